// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/audfx"
)

func newInspectCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show format, length and layout of an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger := g.logger(cfg, cmd.ErrOrStderr())

			session, err := audfx.NewSession(audfx.Config{
				Engine:      cfg.Engine,
				Resampler:   cfg.Resampler,
				MaxFileSize: cfg.MaxFileSize,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			info, err := audfx.LoadFile(session, args[0])
			if err != nil {
				return userError(logger, err)
			}
			buf, _ := session.Original()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(info.Name))
			fmt.Fprintln(out, field("format", info.MIMEType))
			fmt.Fprintln(out, field("size", humanize.IBytes(uint64(info.Size))))
			fmt.Fprintln(out, field("channels", buf.Channels()))
			fmt.Fprintln(out, field("rate", fmt.Sprintf("%s Hz", humanize.Comma(int64(buf.SampleRate())))))
			fmt.Fprintln(out, field("frames", humanize.Comma(int64(buf.Frames()))))
			fmt.Fprintln(out, field("duration", buf.Duration()))

			return nil
		},
	}
}
