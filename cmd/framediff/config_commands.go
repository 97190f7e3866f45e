package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"framediff/internal/archive"
	"framediff/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the framediff configuration",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTargetPath(targetPath)
			if err != nil {
				return err
			}
			if err := writeSampleConfig(target, overwrite); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set paths.archive_root (or export FRAMEDIFF_ARCHIVE_ROOT) to your screenshot archive.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// initTargetPath expands the --path flag, falling back to the default
// config location.
func initTargetPath(flagValue string) (string, error) {
	flagValue = strings.TrimSpace(flagValue)
	resolve := config.ExpandPath
	if flagValue == "" {
		resolve = func(string) (string, error) { return config.DefaultConfigPath() }
	}
	target, err := resolve(flagValue)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return target, nil
}

func writeSampleConfig(target string, overwrite bool) error {
	if !overwrite {
		_, err := os.Stat(target)
		switch {
		case err == nil:
			return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("check config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := config.CreateSample(target); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}
	return nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report what it resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			source := ctx.configPath
			if !ctx.configSeen {
				source += " (not found, defaults used)"
			}
			targets, _ := archive.New(cfg.Paths.ArchiveRoot, archive.ParseSplit(cfg.Archive.MovieSplit)).ListTargets()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path:  %s\n", source)
			fmt.Fprintf(out, "Archive root: %s (%d targets)\n", cfg.Paths.ArchiveRoot, len(targets))
			fmt.Fprintf(out, "Movie split:  %s\n", cfg.Archive.MovieSplit)
			fmt.Fprintf(out, "Encoding:     %s\n", cfg.Diff.Encoding)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
