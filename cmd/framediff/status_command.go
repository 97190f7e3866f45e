package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"framediff/internal/preflight"
)

type statusReport struct {
	ConfigPath  string        `json:"config_path"`
	ConfigFound bool          `json:"config_found"`
	ArchiveRoot string        `json:"archive_root"`
	Checks      []statusCheck `json:"checks"`
	Server      statusCheck   `json:"server"`
}

type statusCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, archive, and server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report := statusReport{
				ConfigPath:  ctx.configPath,
				ConfigFound: ctx.configSeen,
				ArchiveRoot: cfg.Paths.ArchiveRoot,
				Server:      toStatusCheck(preflight.CheckServer(cmd.Context(), cfg.Paths.APIBind)),
			}
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				report.Checks = append(report.Checks, toStatusCheck(result))
			}

			colorize := shouldColorize(cmd.OutOrStdout())
			return emit(cmd, ctx, report, func() string {
				return renderStatusReport(report, colorize)
			})
		},
	}
}

func toStatusCheck(result preflight.Result) statusCheck {
	return statusCheck{Name: result.Name, Passed: result.Passed, Detail: result.Detail}
}

func renderStatusReport(report statusReport, colorize bool) string {
	var lines []string
	lines = append(lines, renderSectionHeader("Configuration", colorize)...)
	configDetail := report.ConfigPath
	configKind := statusOK
	if !report.ConfigFound {
		configDetail = fmt.Sprintf("%s (not found, using defaults)", report.ConfigPath)
		configKind = statusWarn
	}
	lines = append(lines,
		renderStatusLine("Config", configKind, configDetail, colorize),
		renderStatusLine("Archive root", statusInfo, report.ArchiveRoot, colorize),
		"",
	)

	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	for _, check := range report.Checks {
		lines = append(lines, renderStatusLine(check.Name, checkKind(check, statusError), check.Detail, colorize))
	}
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Server", colorize)...)
	lines = append(lines, renderStatusLine("framediffd", checkKind(report.Server, statusWarn), report.Server.Detail, colorize))
	return strings.Join(lines, "\n")
}

func checkKind(check statusCheck, failed statusKind) statusKind {
	if check.Passed {
		return statusOK
	}
	return failed
}
