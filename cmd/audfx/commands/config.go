// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/audfx/internal/config"
)

func newConfigCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the audfx configuration file.

Examples:
  audfx config init
  audfx config init --force --config ./audfx.yaml
  audfx config show`,
	}

	cmd.AddCommand(
		newConfigInitCommand(g),
		newConfigShowCommand(g),
	)
	return cmd
}

func newConfigInitCommand(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := g.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, field("engine", cfg.Engine))
			fmt.Fprintln(out, field("resampler", cfg.Resampler))
			fmt.Fprintln(out, field("output dir", cfg.Output.Dir))
			fmt.Fprintln(out, field("prefix", cfg.Output.Prefix))
			fmt.Fprintln(out, field("max size", humanize.IBytes(uint64(cfg.MaxFileSize))))
			fmt.Fprintln(out, field("log level", cfg.LogLevel))
			return nil
		},
	}
}
