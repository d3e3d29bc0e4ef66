package translate

import (
	"fmt"
	"strings"

	"github.com/mgpai22/scribe/internal/transcript"
)

// Items builds one translation item per segment, indexed by position.
func Items(segments []transcript.Segment) []Item {
	items := make([]Item, len(segments))
	for i, seg := range segments {
		items[i] = Item{Index: i, Text: seg.Text}
	}
	return items
}

// Apply writes translated text back into the transcript at path. Segments
// are rewritten from last to first so earlier line ranges stay valid. With
// overlay, the translation is placed above the original text.
func Apply(path string, segments []transcript.Segment, results []Result, overlay bool) error {
	byIndex := make(map[int]string, len(results))
	for _, r := range results {
		byIndex[r.Index] = r.Text
	}

	for i := len(segments) - 1; i >= 0; i-- {
		translated, ok := byIndex[i]
		if !ok {
			continue
		}
		translated = singleLine(translated)
		if translated == "" {
			return fmt.Errorf("empty translation for segment %d", i)
		}

		text := translated
		if overlay {
			text = translated + "\n" + segments[i].Text
		}

		if err := transcript.EditSegment(path, segments[i], text); err != nil {
			return fmt.Errorf("failed to apply translation to segment %d: %w", i, err)
		}
	}
	return nil
}

// cue bodies are a single line; an arrow would read as a cue header
func singleLine(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "-->", "->")
}
