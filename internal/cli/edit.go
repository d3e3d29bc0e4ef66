package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/transcript"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file.vtt> <index> <text...>",
		Short: "Replace the text of one segment",
		Long: `Replace the text of the segment at <index> (as numbered by "scribe show").

Only the segment's text lines change; every other byte of the file is kept.

Example:
  scribe edit talk.vtt 3 "Corrected sentence."`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid segment index %q", args[1])
			}
			newText := strings.Join(args[2:], " ")

			segments, err := transcript.Parse(path)
			if err != nil {
				return err
			}
			if index < 0 || index >= len(segments) {
				return fmt.Errorf("segment index %d out of range (transcript has %d segments)", index, len(segments))
			}

			seg := segments[index]
			if err := transcript.EditSegment(path, seg, newText); err != nil {
				return err
			}

			ctx.logger.Infow("Segment edited",
				"path", path,
				"index", index,
				"line_start", seg.LineStart,
				"line_end", seg.LineEnd,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated segment %d [%s --> %s]\n", index, seg.Start, seg.End)
			return nil
		},
	}
}
