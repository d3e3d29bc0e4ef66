package transcript

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var hourTimestampRegex = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}`)

// line that looks like cue timing but is skipped by Parse
type Issue struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %q", i.Line+1, i.Reason, i.Text)
}

// Lint reports lines of the file at path that contain a cue arrow but do not
// match the cue header grammar. Parse silently treats those lines as ordinary
// text, so each issue is a cue that will be missing from the parsed segments.
func Lint(path string) ([]Issue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	lines, err := readLines(file)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for i, trimmed := range trimLines(lines) {
		if !strings.Contains(trimmed, "-->") || isCueHeader(trimmed) {
			continue
		}

		reason := "malformed cue timing"
		if hourTimestampRegex.MatchString(trimmed) {
			reason = "hour-form timestamp not supported"
		}
		issues = append(issues, Issue{Line: i, Text: trimmed, Reason: reason})
	}

	return issues, nil
}
