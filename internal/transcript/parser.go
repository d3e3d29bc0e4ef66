package transcript

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Parse reads the caption file at path and returns its segments in file order.
//
// Lines that are not cue headers (a WEBVTT banner, cue identifiers, notes, or a
// malformed timing line) are skipped without error. Cues whose body is empty
// are dropped.
func Parse(path string) ([]Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ParseReader(file)
}

// ParseReader parses caption content from r with the same rules as Parse.
func ParseReader(r io.Reader) ([]Segment, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return parseLines(lines), nil
}

func readLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return splitLines(data), nil
}

func parseLines(lines []string) []Segment {
	trimmed := trimLines(lines)
	segments := make([]Segment, 0)

	i := 0
	for i < len(trimmed) {
		start, end, ok := matchCueHeader(trimmed[i])
		if !ok {
			i++
			continue
		}
		i++

		first := i
		var body []string
		// a header without a blank separator still ends the body
		for i < len(trimmed) && trimmed[i] != "" && !isCueHeader(trimmed[i]) {
			body = append(body, trimmed[i])
			i++
		}

		text := strings.Join(body, " ")
		if text == "" {
			continue
		}

		segments = append(segments, Segment{
			LineStart: first,
			LineEnd:   i - 1,
			Text:      text,
			Start:     start,
			End:       end,
		})
	}

	return segments
}
