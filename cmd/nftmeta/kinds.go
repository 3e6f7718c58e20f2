package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/jsonschema"
	"github.com/reoring/nftmeta/mint"
	"github.com/reoring/nftmeta/rules"
)

// kind binds a document kind name to its record type and validator.
type kind struct {
	name    string
	summary string
	decode  func(data []byte, isYAML bool, opt nftmeta.ParseOpt) (any, error)
	check   func(v any, opts ...rules.Option) nftmeta.Issues
	schema  func() *jsonschema.Schema
}

func kindOf[T any](name, summary string, schema func() *jsonschema.Schema, check func(T, ...rules.Option) nftmeta.Issues) kind {
	return kind{
		name:    name,
		summary: summary,
		schema:  schema,
		decode: func(data []byte, isYAML bool, opt nftmeta.ParseOpt) (any, error) {
			return decodeAs[T](data, isYAML, opt)
		},
		check: func(v any, opts ...rules.Option) nftmeta.Issues {
			return check(v.(T), opts...)
		},
	}
}

var kinds = map[string]kind{}

func register(k kind) { kinds[k.name] = k }

func init() {
	register(kindOf("metadata", "NFT metadata document", jsonschema.Metadata, rules.Metadata))
	register(kindOf("ai-metadata", "NFT metadata with an AI agent", jsonschema.AiMetadata, rules.AiMetadata))
	register(kindOf("collection", "collection info", jsonschema.Collection, rules.Collection))
	register(kindOf("stage", "single Solana mint stage", jsonschema.MintStage, rules.MintStage))
	register(kindOf("stages", "list of Solana mint stages", jsonschema.MintStages, func(s mint.Stages, opts ...rules.Option) nftmeta.Issues {
		return rules.MintStages(s, opts...)
	}))
	register(kindOf("evm-stage", "single EVM mint stage", jsonschema.EvmMintStage, rules.EvmMintStage))
	register(kindOf("evm-stages", "list of EVM mint stages", jsonschema.EvmMintStages, func(s mint.EvmStages, opts ...rules.Option) nftmeta.Issues {
		return rules.EvmMintStages(s, opts...)
	}))
}

func kindNames() []string {
	names := make([]string, 0, len(kinds))
	for n := range kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupKind(name string) (kind, error) {
	k, ok := kinds[name]
	if !ok {
		return kind{}, fmt.Errorf("unknown kind %q (want one of: %s)", name, strings.Join(kindNames(), ", "))
	}
	return k, nil
}

// kindsCmd lists the document kinds.
func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List document kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, n := range kindNames() {
				fmt.Fprintf(w, "%-12s %s\n", n, kinds[n].summary)
			}
			return nil
		},
	}
}

// schemaCmd prints the JSON Schema of a kind.
func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <kind>",
		Short: "Print the JSON Schema of a document kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			b, err := nftmeta.EncodeIndent(k.schema(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return err
		},
	}
}
