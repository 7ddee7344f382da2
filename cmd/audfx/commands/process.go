// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/internal/config"
	"github.com/ik5/audfx/pipeline"
)

type processFlags struct {
	semitones    int
	removeVocals bool
	engine       string
	resampler    string
	output       string
	outputDir    string
	prefix       string
	quiet        bool
}

func newProcessCommand(g *globals) *cobra.Command {
	f := &processFlags{}

	cmd := &cobra.Command{
		Use:   "process <input>",
		Short: "Pitch-shift and/or remove vocals, write a WAV file",
		Long: `Decode <input>, shift it by --pitch semitones, optionally remove
center-panned vocals, and write a 16-bit PCM WAV file.

Without --output the file is named <prefix>_<unix millis>.wav inside
--output-dir.`,
		Example: `  audfx process -p 3 song.wav
  audfx process -k --engine granular -o karaoke.wav song.ogg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			f.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runProcess(cmd, g, cfg, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.semitones, "pitch", "p", 0, "semitones to shift by, negative is lower")
	flags.BoolVarP(&f.removeVocals, "karaoke", "k", false, "remove center-panned vocals")
	flags.StringVar(&f.engine, "engine", "", "pitch engine: wsola or granular")
	flags.StringVar(&f.resampler, "resampler", "", "wsola duration stage: cubic or polyphase")
	flags.StringVarP(&f.output, "output", "o", "", "output file path")
	flags.StringVar(&f.outputDir, "output-dir", "", "directory for generated file names")
	flags.StringVar(&f.prefix, "prefix", "", "prefix for generated file names")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "no progress output")

	return cmd
}

// apply lets explicitly set flags override the loaded config.
func (f *processFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine = f.engine
	}
	if flags.Changed("resampler") {
		cfg.Resampler = f.resampler
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = f.outputDir
	}
	if flags.Changed("prefix") {
		cfg.Output.Prefix = f.prefix
	}
}

func runProcess(cmd *cobra.Command, g *globals, cfg config.Config, f *processFlags, input string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := g.logger(cfg, stderr)

	session, err := audfx.NewSession(audfx.Config{
		Engine:      cfg.Engine,
		Resampler:   cfg.Resampler,
		MaxFileSize: cfg.MaxFileSize,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	info, err := audfx.LoadFile(session, input)
	if err != nil {
		return userError(logger, err)
	}
	logger.Debug("loaded input", "name", info.Name, "mime", info.MIMEType, "size", info.Size)

	opts := pipeline.Options{
		Semitones:    f.semitones,
		RemoveVocals: f.removeVocals,
		OnSynthesisError: func(*effects.SynthesisError) {
			fmt.Fprintln(stderr, warnStyle.Render("pitch shift failed, keeping the original key"))
		},
	}
	if !f.quiet {
		opts.Progress = func(p pipeline.Progress) {
			fmt.Fprintln(stderr, progressLine(p.Percent, p.Message))
		}
	}

	artifact, err := session.Process(opts)
	if err != nil {
		return userError(logger, err)
	}

	path := f.output
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, artifact.FileName(cfg.Output.Prefix))
	}
	if err := writeArtifact(path, artifact); err != nil {
		return err
	}

	fmt.Fprintln(stdout, titleStyle.Render("Processing complete"))
	fmt.Fprintln(stdout, field("input", info.Name))
	fmt.Fprintln(stdout, field("output", path))
	fmt.Fprintln(stdout, field("pitch", fmt.Sprintf("%+d semitones", f.semitones)))
	fmt.Fprintln(stdout, field("karaoke", f.removeVocals))
	fmt.Fprintln(stdout, field("duration", artifact.Duration))
	fmt.Fprintln(stdout, field("size", humanize.IBytes(uint64(artifact.Size))))

	return nil
}

func writeArtifact(path string, artifact *pipeline.Artifact) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	if _, err := artifact.WriteTo(out); err != nil {
		return err
	}
	return nil
}

// userError logs err in full and returns its one-line display form.
func userError(logger *slog.Logger, err error) error {
	logger.Debug("processing error", "error", err)

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return err
	}
	return errors.New(pipeline.UserMessage(err))
}
