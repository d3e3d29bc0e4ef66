package transcript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timed caption produced by a transcription backend
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// WriteVTT writes cues as a WEBVTT document: a banner, then one
// "start --> end" header and a single text line per cue, each block followed
// by a blank line. Cues without text are skipped.
func WriteVTT(w io.Writer, cues []Cue) error {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	for _, cue := range cues {
		text := cueText(cue.Text)
		if text == "" {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatTimestamp(cue.Start),
			FormatTimestamp(cue.End)))
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteFile writes cues to path in WEBVTT form, creating parent directories.
func WriteFile(path string, cues []Cue) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transcript: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := WriteVTT(file, cues); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return file.Close()
}

// one line of text per cue; an arrow in the text would read as a cue header
func cueText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "-->", "->")
}
