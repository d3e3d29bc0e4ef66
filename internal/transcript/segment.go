// Package transcript parses WebVTT-like caption files into line-addressed
// segments and rewrites a segment's text in place.
package transcript

import (
	"regexp"
	"strings"
)

// matched against the trimmed line from its first character only, so trailing
// cue settings after the end timestamp are accepted
var cueHeaderRegex = regexp.MustCompile(
	`^(\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}\.\d{3})`,
)

// single timed caption parsed from a transcript file
type Segment struct {
	// index of the first caption text line (the cue header is LineStart-1)
	LineStart int `json:"line_start"`
	// index of the last caption text line, inclusive
	LineEnd int `json:"line_end"`
	// body lines trimmed and joined with single spaces
	Text string `json:"text"`
	// timestamps exactly as written in the cue header
	Start string `json:"start"`
	End   string `json:"end"`
}

// number of source lines the segment body spans
func (s Segment) Lines() int {
	return s.LineEnd - s.LineStart + 1
}

// start and end timestamps captured from a cue header line, ok=false when the
// line is not a cue header
func matchCueHeader(trimmed string) (start, end string, ok bool) {
	m := cueHeaderRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func isCueHeader(trimmed string) bool {
	return cueHeaderRegex.MatchString(trimmed)
}

// splits raw content into lines that keep their terminators, so untouched
// lines can be written back byte-for-byte
func splitLines(data []byte) []string {
	var lines []string
	s := string(data)
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// comparison form of each line: whitespace trimmed, and a byte order mark
// removed from the first line
func trimLines(lines []string) []string {
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed[i] = strings.TrimSpace(line)
	}
	return trimmed
}
