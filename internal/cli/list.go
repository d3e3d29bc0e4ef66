package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/library"
	"github.com/mgpai22/scribe/internal/transcript"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List transcripts and their paired media",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := cfg.Paths.TranscriptDir
			if len(args) == 1 {
				dir = args[0]
			}

			entries, err := library.Scan(dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No transcripts in %s\n", dir)
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				count := "?"
				if segs, err := transcript.Parse(entry.Path); err == nil {
					count = strconv.Itoa(len(segs))
				} else {
					ctx.logger.Warnw("Failed to parse transcript", "path", entry.Path, "error", err)
				}
				mediaName := entry.Media
				if mediaName == "" {
					mediaName = "-"
				}
				rows = append(rows, []string{entry.Name, mediaName, count})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Transcript", "Media", "Segments"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
