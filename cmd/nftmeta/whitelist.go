package main

import (
	"bytes"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/mint"
)

func (a *app) whitelistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whitelist <file>",
		Short: "List EVM whitelist entries with their variant and limit",
		Long: `Print every whitelist entry of an EVM mint stage, or of each stage when the
file holds a list of stages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := a.decodeEvmStages(cmd, args[0])
			if err != nil {
				return a.decodeFailed(cmd, args[0], err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STAGE\tENTRY\tKIND\tADDRESS\tLIMIT")
			for i, s := range stages {
				wl, ok := s.Whitelist.Get()
				if !ok {
					continue
				}
				a.logger.Debug("whitelist", zap.Int("stage", i), zap.String("shape", wl.Shape().String()))
				for j, e := range wl {
					limit := "-"
					if n, ok := e.MintLimit(); ok {
						limit = strconv.Itoa(n)
					}
					fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", i, j, e.Kind(), e.Address(), limit)
				}
			}
			return tw.Flush()
		},
	}
}

// decodeEvmStages accepts a single stage object or an array of stages.
func (a *app) decodeEvmStages(cmd *cobra.Command, file string) (mint.EvmStages, error) {
	data, err := readInput(cmd.InOrStdin(), file)
	if err != nil {
		return nil, err
	}
	opt := a.cfg.parseOpt()
	isList := bytes.HasPrefix(bytes.TrimSpace(data), []byte("["))
	if isYAMLFile(file) {
		isList = isYAMLSequence(data)
	}
	if isList {
		return decodeAs[mint.EvmStages](data, isYAMLFile(file), opt)
	}
	s, err := decodeAs[mint.EvmMintStage](data, isYAMLFile(file), opt)
	if err != nil {
		return nil, err
	}
	return mint.EvmStages{s}, nil
}

// isYAMLSequence reports whether the first document's root node is a
// sequence. Unparsable input reports false and the single stage decode
// reports the error.
func isYAMLSequence(data []byte) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return false
	}
	return doc.Content[0].Kind == yaml.SequenceNode
}

func decodeAs[T any](data []byte, isYAML bool, opt nftmeta.ParseOpt) (T, error) {
	if isYAML {
		return nftmeta.DecodeYAML[T](data, opt)
	}
	return nftmeta.Decode[T](data, opt)
}
