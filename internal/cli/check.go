package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/transcript"
)

var errIssuesFound = errors.New("transcript issues found")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.vtt...>",
		Short: "Report cue timings the parser would skip",
		Long: `Report lines that look like cue timings but will not be read as segments,
such as hour-form timestamps or malformed arrows. Exits non-zero when any
issue is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			total := 0
			for _, path := range args {
				issues, err := transcript.Lint(path)
				if err != nil {
					return err
				}
				total += len(issues)
				ctx.logger.Debugw("Checked transcript", "path", path, "issues", len(issues))
				if len(issues) == 0 {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				for _, issue := range issues {
					fmt.Fprintf(out, "%s: %s\n", path, issue)
				}
			}
			if total > 0 {
				return fmt.Errorf("%w: %d", errIssuesFound, total)
			}
			return nil
		},
	}
}
