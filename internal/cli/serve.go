package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/config"
	"github.com/mgpai22/scribe/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var (
		bind string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve transcripts and media to a playback display",
		Long: `Start the HTTP API used by the playback display. It lists transcripts,
returns their segments, resolves the active segment for a playback position,
streams paired media, and applies segment edits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if bind == "" {
				bind = cfg.Server.Bind
			}
			if dir == "" {
				dir = cfg.Paths.TranscriptDir
			} else if dir, err = config.ExpandPath(dir); err != nil {
				return err
			}

			srv := server.New(server.Options{
				Dir:    dir,
				Bind:   bind,
				Logger: ctx.logger,
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", bind)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Transcript directory (default from config)")
	return cmd
}
