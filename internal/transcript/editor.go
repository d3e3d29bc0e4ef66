package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"
)

// Edit replaces the inclusive line range [lineStart, lineEnd] of the file at
// path with a single line holding newText. Every other line is written back
// unchanged.
//
// The range is not checked against the cue structure. Ranges from an earlier
// Parse are only valid until the next edit that changes the line count; use
// EditSegment when that cannot be guaranteed.
func Edit(path string, lineStart, lineEnd int, newText string) error {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open transcript for editing: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	lines, err := readLines(file)
	if err != nil {
		return err
	}

	updated, err := replaceLines(lines, lineStart, lineEnd, newText)
	if err != nil {
		return err
	}

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate transcript: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind transcript: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, line := range updated {
		if _, err := writer.WriteString(line); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	return file.Close()
}

func replaceLines(
	lines []string,
	lineStart, lineEnd int,
	newText string,
) ([]string, error) {
	if lineStart < 0 || lineEnd >= len(lines) || lineStart > lineEnd {
		return nil, fmt.Errorf(
			"%w: lines %d-%d (file has %d lines)",
			ErrLineOutOfRange,
			lineStart,
			lineEnd,
			len(lines),
		)
	}

	terminator := "\n"
	if strings.HasSuffix(lines[lineEnd], "\r\n") {
		terminator = "\r\n"
	}

	updated := make([]string, 0, len(lines)-(lineEnd-lineStart))
	updated = append(updated, lines[:lineStart]...)
	updated = append(updated, newText+terminator)
	updated = append(updated, lines[lineEnd+1:]...)
	return updated, nil
}

// EditSegment replaces the body of seg with newText after confirming, under
// an advisory lock on the transcript, that a fresh parse still yields seg.
//
// It fails with ErrStaleSegment instead of writing when the file changed since
// seg was parsed, and rejects text that would alter the cue structure.
func EditSegment(path string, seg Segment, newText string) error {
	if err := ValidateText(newText); err != nil {
		return err
	}

	lock := flock.New(LockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock transcript: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	current, err := Parse(path)
	if err != nil {
		return err
	}
	if !slices.Contains(current, seg) {
		return fmt.Errorf(
			"%w: lines %d-%d [%s --> %s]",
			ErrStaleSegment,
			seg.LineStart,
			seg.LineEnd,
			seg.Start,
			seg.End,
		)
	}

	return Edit(path, seg.LineStart, seg.LineEnd, newText)
}

// ValidateText reports whether text can replace a cue body without changing
// how the file parses.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return ErrBlankLineInText
		}
		if isCueHeader(trimmed) {
			return fmt.Errorf("%w: %q", ErrCueHeaderInText, trimmed)
		}
	}
	return nil
}

// advisory lock file guarding edits to the transcript at path
func LockPath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+".lock")
}
