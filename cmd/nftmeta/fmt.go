package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/nftmeta"
)

func (a *app) fmtCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "fmt <kind> <file>",
		Short: "Re-encode a document in canonical form",
		Long: `Decode the file as the given kind and print it re-encoded: fixed key order,
UTC millisecond timestamps and absent optionals dropped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			v, err := a.decodeFile(cmd, k, args[1])
			if err != nil {
				return a.decodeFailed(cmd, args[1], err)
			}
			var out []byte
			if asYAML {
				out, err = nftmeta.EncodeYAML(v)
			} else {
				out, err = nftmeta.EncodeIndent(v, "", "  ")
				out = append(out, '\n')
			}
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	return cmd
}
