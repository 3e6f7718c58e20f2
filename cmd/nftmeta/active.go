package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/nftmeta/codec"
	"github.com/reoring/nftmeta/mint"
)

func (a *app) activeCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "active <stages|evm-stages> <file>",
		Short: "Show the stages active at an instant",
		Long: `Print the stages whose window contains the instant given with --at
(default: now), followed by the next stage to open.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := now()
			if at != "" {
				var err error
				if t, err = codec.Timestamp().Decode(cmd.Context(), at); err != nil {
					return fmt.Errorf("--at: %w", err)
				}
			}
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			v, err := a.decodeFile(cmd, k, args[1])
			if err != nil {
				return a.decodeFailed(cmd, args[1], err)
			}
			var rows []stageRow
			switch ss := v.(type) {
			case mint.Stages:
				rows = stageRows(ss, t, func(s mint.MintStage) (string, string) {
					return s.Label, fmt.Sprintf("%g SOL", s.PriceInSol)
				})
			case mint.EvmStages:
				rows = stageRows(ss, t, func(s mint.EvmMintStage) (string, string) {
					return "", fmt.Sprintf("%g ETH", s.PricePerNFT)
				})
			default:
				return fmt.Errorf("active works on stages or evm-stages, not %s", k.name)
			}
			a.logger.Debug("active stages", zap.Time("at", t), zap.Int("rows", len(rows)))
			return printStageRows(cmd, rows)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "RFC3339 instant to evaluate (default: now)")
	return cmd
}

type stageRow struct {
	status string // active or next
	index  int
	label  string
	price  string
	window mint.Window
}

func stageRows[S mint.Scheduled](stages []S, t time.Time, describe func(S) (label, price string)) []stageRow {
	var rows []stageRow
	for i, s := range stages {
		if !s.Schedule().Contains(t) {
			continue
		}
		label, price := describe(s)
		rows = append(rows, stageRow{status: "active", index: i, label: label, price: price, window: s.Schedule()})
	}
	if s, i, ok := mint.Next(stages, t); ok {
		label, price := describe(s)
		rows = append(rows, stageRow{status: "next", index: i, label: label, price: price, window: s.Schedule()})
	}
	return rows
}

func printStageRows(cmd *cobra.Command, rows []stageRow) error {
	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no active or upcoming stage")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tSTAGE\tLABEL\tPRICE\tSTART\tEND")
	for _, r := range rows {
		end := "-"
		if e, ok := r.window.End.Get(); ok {
			end = codec.FormatTimestamp(e)
		}
		label := r.label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", r.status, r.index, label, r.price, codec.FormatTimestamp(r.window.Start), end)
	}
	return tw.Flush()
}
