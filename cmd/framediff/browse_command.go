package main

import (
	"github.com/spf13/cobra"

	"framediff/internal/browse"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dir]",
		Short: "List a directory under the archive root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			listing, err := browse.List(svc.Archive(), dir)
			if err != nil {
				return err
			}
			return emit(cmd, ctx, listing, func() string {
				rows := make([][]string, 0, len(listing.Entries))
				for _, entry := range listing.Entries {
					name := entry.Name
					if entry.Kind == browse.KindDirectory {
						name += "/"
					}
					rows = append(rows, []string{name, entry.Size, entry.Modified.Format("2006-01-02 15:04")})
				}
				return renderTable(tableSpec{
					Title:   "/" + listing.Dir,
					Headers: []string{"Name", "Size", "Modified"},
					Rows:    rows,
					Aligns:  []columnAlignment{alignLeft, alignRight, alignLeft},
				})
			})
		},
	}
}
