package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"framediff/internal/query"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var withImages bool
	var onlyChanged bool

	cmd := &cobra.Command{
		Use:   "compare <target> <build1> <build2> <movie>",
		Short: "Compare one movie frame by frame between two builds",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			table, err := svc.Compare(cmd.Context(), args[0], args[1], args[2], args[3], withImages && ctx.jsonOutput())
			if err != nil {
				return err
			}
			if onlyChanged {
				kept := table.Rows[:0]
				for _, row := range table.Rows {
					if row.HasDiff {
						kept = append(kept, row)
					}
				}
				table.Rows = kept
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			return emit(cmd, ctx, table, func() string {
				return renderCompare(table, colorize)
			})
		},
	}
	cmd.Flags().BoolVar(&withImages, "images", false, "Include base64 images in --json output")
	cmd.Flags().BoolVar(&onlyChanged, "changed", false, "Show only frames that differ")
	return cmd
}

func renderCompare(table query.CompareTable, colorize bool) string {
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		diff := "same"
		kind := statusOK
		switch {
		case row.Degraded:
			diff, kind = "unreadable", statusError
		case !row.InBuild1 || !row.InBuild2:
			diff, kind = "one side", statusWarn
		case row.HasDiff:
			diff, kind = "differs", statusError
		}
		if colorize {
			diff = statusKindColor(kind) + diff + ansiReset
		}
		rows = append(rows, []string{strconv.Itoa(row.Frame), yesNo(row.InBuild1), yesNo(row.InBuild2), diff})
	}
	return renderTable(tableSpec{
		Title:   fmt.Sprintf("%s / %s: %s → %s", table.Target, table.Movie, table.Build1, table.Build2),
		Headers: []string{"Frame", table.Build1, table.Build2, "Result"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignCenter, alignCenter, alignLeft},
		Footer:  []string{"", "", "", fmt.Sprintf("%d of %d differ", table.Changed(), len(table.Rows))},
	})
}
