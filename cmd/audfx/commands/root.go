// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/audfx/internal/config"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "audfx",
		Short: "Offline pitch shifting and vocal removal",
		Long: `audfx - transpose songs and strip their vocals.

Input may be WAV, MP3, Ogg Vorbis or AIFF up to 50 MiB; output is always
16-bit PCM WAV.

Settings are read from ~/.audfx/config.yaml, then AUDFX_* environment
variables, then flags.

Examples:
  # Two semitones down, karaoke mode
  audfx process -p -2 -k song.mp3

  # Show what a file contains
  audfx inspect song.mp3

  # Write ~/.audfx/config.yaml with the defaults
  audfx config init`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.audfx/config.yaml)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newProcessCommand(g),
		newInspectCommand(g),
		newConfigCommand(g),
		newVersionCommand(g),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (g *globals) load() (config.Config, error) {
	return config.Load(g.configPath)
}

// logger writes text logs to w at the configured level, or debug with
// --verbose.
func (g *globals) logger(cfg config.Config, w io.Writer) *slog.Logger {
	level, _ := cfg.Level()
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
