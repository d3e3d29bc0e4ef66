package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/transcript"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var at float64

	cmd := &cobra.Command{
		Use:   "show <file.vtt>",
		Short: "Display the segments of a transcript",
		Long: `Display every segment of a transcript with its timing, seek offset and
line range.

With --at, the segment that would be highlighted at that playback position
(in seconds) is marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := transcript.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(segments) == 0 {
				fmt.Fprintln(out, "No segments found")
				return nil
			}

			active := -1
			if cmd.Flags().Changed("at") {
				if at < 0 {
					return fmt.Errorf("--at must not be negative")
				}
				active = transcript.ActiveIndex(segments, time.Duration(at*float64(time.Second)))
				ctx.logger.Debugw("Resolved active segment", "at", at, "index", active)
			}
			colorize := shouldColorize(out)

			rows := make([][]string, 0, len(segments))
			for i, seg := range segments {
				seek, _ := transcript.SeekSeconds(seg.Start)
				marker := ""
				textCol := seg.Text
				if i == active {
					marker = ">"
					if colorize {
						textCol = text.Colors{text.Bold, text.FgGreen}.Sprint(textCol)
					}
				}
				rows = append(rows, []string{
					marker,
					strconv.Itoa(i),
					seg.Start,
					seg.End,
					strconv.Itoa(seek),
					fmt.Sprintf("%d-%d", seg.LineStart+1, seg.LineEnd+1),
					textCol,
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"", "#", "Start", "End", "Seek", "Lines", "Text"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			if cmd.Flags().Changed("at") && active < 0 {
				fmt.Fprintln(out, "Playback position is past the last segment")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&at, "at", 0, "Playback position in seconds to highlight")
	return cmd
}
