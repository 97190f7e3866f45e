package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"framediff/internal/query"
	"framediff/internal/timeline"
)

func newArchiveCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newTargetsCommand(ctx),
		newBuildsCommand(ctx),
		newTargetCommand(ctx),
		newBuildCommand(ctx),
		newMovieCommand(ctx),
		newFramesCommand(ctx),
	}
}

func newTargetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List targets in the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			targets, err := svc.Targets(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, ctx, targets, func() string {
				rows := make([][]string, 0, len(targets))
				for _, target := range targets {
					rows = append(rows, []string{target, strconv.Itoa(len(svc.Archive().ListBuilds(target)))})
				}
				return renderTable(tableSpec{
					Headers: []string{"Target", "Builds"},
					Rows:    rows,
					Aligns:  []columnAlignment{alignLeft, alignRight},
				})
			})
		},
	}
}

func newBuildsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "builds <target>",
		Short: "List builds of a target, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			view, err := svc.TargetOverview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd, ctx, view.Builds, func() string {
				rows := make([][]string, 0, len(view.Builds))
				for _, build := range view.Builds {
					rows = append(rows, []string{build, strconv.Itoa(len(view.Membership[build]))})
				}
				return renderTable(tableSpec{
					Title:   view.Target,
					Headers: []string{"Build", "Movies"},
					Rows:    rows,
					Aligns:  []columnAlignment{alignLeft, alignRight},
				})
			})
		},
	}
}

func newTargetCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "target <target>",
		Short: "Show the verdict matrix of a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			view, err := svc.TargetOverview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			return emit(cmd, ctx, view, func() string {
				return renderMatrix(view.Target, view.Builds, view.Rows, limit, colorize)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the newest N builds (0 shows all)")
	return cmd
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build <target> <build>",
		Short: "Show the movies of one build and their verdicts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			view, err := svc.BuildView(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			return emit(cmd, ctx, view, func() string {
				return renderBuildView(view, colorize)
			})
		},
	}
}

func newMovieCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "movie <movie>",
		Short: "Show the verdicts of one movie across every target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			matrix, err := svc.MovieMatrix(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			return emit(cmd, ctx, matrix, func() string {
				if len(matrix.Targets) == 0 {
					return fmt.Sprintf("Movie %q not found in any target", matrix.Movie)
				}
				parts := make([]string, 0, len(matrix.Targets))
				for _, t := range matrix.Targets {
					parts = append(parts, renderMatrix(t.Target, t.Builds, []timeline.Row{t.Row}, 0, colorize))
				}
				return strings.Join(parts, "\n")
			})
		},
	}
}

func newFramesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "frames <target> <movie>",
		Short: "Show which builds contain each frame of a movie",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			view, err := svc.MovieFrames(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return emit(cmd, ctx, view, func() string {
				if len(view.Frames) == 0 {
					return fmt.Sprintf("Movie %q has no frames in %s", view.Movie, view.Target)
				}
				return renderFrames(view)
			})
		},
	}
}

func renderMatrix(target string, builds []string, rows []timeline.Row, limit int, colorize bool) string {
	if limit > 0 && limit < len(builds) {
		builds = builds[:limit]
	}
	headers := append([]string{"Movie"}, builds...)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := []string{row.Movie}
		for _, build := range builds {
			cell, ok := row.Cell(build)
			if !ok {
				line = append(line, "")
				continue
			}
			line = append(line, renderVerdict(cell, colorize))
		}
		out = append(out, line)
	}
	return renderTable(tableSpec{Title: target, Headers: headers, Rows: out})
}

func renderBuildView(view query.BuildView, colorize bool) string {
	title := fmt.Sprintf("%s / %s", view.Target, view.Build)
	if view.Previous != "" {
		title += " vs " + view.Previous
	}
	rows := make([][]string, 0, len(view.Movies)+len(view.Removed))
	for _, m := range view.Movies {
		rows = append(rows, []string{m.Movie, renderVerdict(m.Cell, colorize), strconv.Itoa(m.Cell.FrameCount)})
	}
	for _, movie := range view.Removed {
		rows = append(rows, []string{movie, "Removed", "0"})
	}
	changed := 0
	for _, m := range view.Movies {
		if m.Cell.Verdict.IsDifference() {
			changed++
		}
	}
	return renderTable(tableSpec{
		Title:   title,
		Headers: []string{"Movie", "Verdict", "Frames"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight},
		Footer:  []string{"", fmt.Sprintf("%d changed", changed), ""},
	})
}

func renderFrames(view query.MovieFrames) string {
	headers := append([]string{"Frame"}, view.Builds...)
	aligns := []columnAlignment{alignRight}
	rows := make([][]string, 0, len(view.Frames))
	for _, frame := range view.Frames {
		present := make(map[string]bool, len(frame.Builds))
		for _, build := range frame.Builds {
			present[build] = true
		}
		line := []string{strconv.Itoa(frame.Frame)}
		for _, build := range view.Builds {
			mark := ""
			if present[build] {
				mark = "●"
			}
			line = append(line, mark)
		}
		rows = append(rows, line)
	}
	for range view.Builds {
		aligns = append(aligns, alignCenter)
	}
	return renderTable(tableSpec{
		Title:   view.Target + " / " + view.Movie,
		Headers: headers,
		Rows:    rows,
		Aligns:  aligns,
	})
}
