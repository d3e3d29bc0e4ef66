// Package library discovers transcripts in a directory and pairs each one
// with the media file it was produced from.
package library

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const transcriptExt = ".vtt"

var (
	// ErrNotFound is returned when no transcript with the requested name exists.
	ErrNotFound = errors.New("transcript not found")
	// ErrInvalidName is returned for names that would escape the directory.
	ErrInvalidName = errors.New("invalid transcript name")
)

// represents one transcript and its paired media file
type Entry struct {
	Name      string `json:"name"`
	Path      string `json:"-"`
	Media     string `json:"media,omitempty"`
	MediaPath string `json:"-"`
}

// HasMedia reports whether a media file was paired with the transcript.
func (e Entry) HasMedia() bool {
	return e.MediaPath != ""
}

// Scan lists every .vtt file in dir, sorted by name. Each transcript is
// paired with the first non-transcript file sharing its stem.
func Scan(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	entries := []Entry{}
	for _, name := range names {
		if !isTranscript(name) {
			continue
		}
		entries = append(entries, pair(dir, name, names))
	}
	return entries, nil
}

// Find returns the entry for the transcript called name in dir.
func Find(dir, name string) (Entry, error) {
	if err := validateName(name); err != nil {
		return Entry{}, err
	}

	entries, err := Scan(dir)
	if err != nil {
		return Entry{}, err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// TranscriptPath returns the transcript path for a media file: same
// directory, same stem, .vtt extension.
func TranscriptPath(media string) string {
	return strings.TrimSuffix(media, filepath.Ext(media)) + transcriptExt
}

// Stage copies src into dir so the transcript written next to it shares a
// folder with its media. Files already inside dir are not copied.
func Stage(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve media path: %w", err)
	}
	dst, err := filepath.Abs(filepath.Join(dir, filepath.Base(src)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve staged path: %w", err)
	}
	if srcAbs == dst {
		return dst, nil
	}

	in, err := os.Open(srcAbs)
	if err != nil {
		return "", fmt.Errorf("failed to open media file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to copy media file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close staged file: %w", err)
	}
	return dst, nil
}

func pair(dir, name string, names []string) Entry {
	entry := Entry{
		Name: name,
		Path: filepath.Join(dir, name),
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for _, candidate := range names {
		if isTranscript(candidate) {
			continue
		}
		if strings.TrimSuffix(candidate, filepath.Ext(candidate)) == stem {
			entry.Media = candidate
			entry.MediaPath = filepath.Join(dir, candidate)
			break
		}
	}
	return entry
}

func isTranscript(name string) bool {
	return strings.EqualFold(filepath.Ext(name), transcriptExt)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
