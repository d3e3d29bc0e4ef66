package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mgpai22/scribe/internal/media"
	"github.com/mgpai22/scribe/internal/transcript"
)

type fakeTranscriber struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
	cues  []transcript.Cue
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, audioPath)
	f.mu.Unlock()

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	if err, ok := f.fail[stem]; ok {
		return nil, err
	}
	return &Result{Cues: f.cues}, nil
}

func copyPrepare(ctx context.Context, in, out string, opts media.AudioOptions) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

func TestPipelineWritesTranscriptsBesideStagedMedia(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	fake := &fakeTranscriber{
		fail: map[string]error{"broken": errors.New("provider exploded")},
		cues: []transcript.Cue{
			{Start: 0, End: 1500 * time.Millisecond, Text: "Hello there."},
			{Start: 1500 * time.Millisecond, End: 3 * time.Second, Text: "General Kenobi."},
		},
	}
	p := &Pipeline{
		Transcriber: fake,
		OutputDir:   outDir,
		Concurrency: 2,
		prepare:     copyPrepare,
	}

	var progressCount int
	p.Progress = func(FileResult) { progressCount++ }

	files := []string{
		writeInput(t, inDir, "talk.mp3"),
		writeInput(t, inDir, "notes.txt"),
		writeInput(t, inDir, "broken.wav"),
		writeInput(t, inDir, "clip.mp4"),
	}

	results := p.Run(context.Background(), files)
	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	if progressCount != len(files) {
		t.Errorf("expected %d progress callbacks, got %d", len(files), progressCount)
	}

	for i, f := range files {
		if results[i].Input != f {
			t.Errorf("result %d out of order: %q", i, results[i].Input)
		}
	}

	talk := results[0]
	if talk.Err != nil {
		t.Fatalf("talk.mp3 failed: %v", talk.Err)
	}
	if talk.Transcript != filepath.Join(outDir, "talk.vtt") {
		t.Errorf("unexpected transcript path: %q", talk.Transcript)
	}
	if talk.Cues != 2 {
		t.Errorf("expected 2 cues, got %d", talk.Cues)
	}
	segs, err := transcript.Parse(talk.Transcript)
	if err != nil {
		t.Fatalf("failed to parse written transcript: %v", err)
	}
	if len(segs) != 2 || segs[1].Text != "General Kenobi." || segs[1].Start != "00:01.500" {
		t.Errorf("unexpected segments: %+v", segs)
	}
	if _, err := os.Stat(filepath.Join(outDir, "talk.mp3")); err != nil {
		t.Errorf("expected staged media beside transcript: %v", err)
	}

	if !errors.Is(results[1].Err, ErrUnsupportedMedia) {
		t.Errorf("expected ErrUnsupportedMedia for notes.txt, got %v", results[1].Err)
	}
	if results[2].Err == nil || !strings.Contains(results[2].Err.Error(), "unable to transcribe broken.wav") {
		t.Errorf("expected per-file error for broken.wav, got %v", results[2].Err)
	}
	if results[3].Err != nil {
		t.Errorf("clip.mp4 failed: %v", results[3].Err)
	}

	if failed := Failed(results); len(failed) != 2 {
		t.Errorf("expected 2 failures, got %d", len(failed))
	}
}

func TestPipelineNoCues(t *testing.T) {
	inDir := t.TempDir()
	p := &Pipeline{
		Transcriber: &fakeTranscriber{},
		prepare:     copyPrepare,
	}

	results := p.Run(context.Background(), []string{writeInput(t, inDir, "silent.wav")})
	if !errors.Is(results[0].Err, ErrNoCues) {
		t.Fatalf("expected ErrNoCues, got %v", results[0].Err)
	}
	if _, err := os.Stat(filepath.Join(inDir, "silent.vtt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no transcript to be written, stat err = %v", err)
	}
}

func TestPipelineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeTranscriber{}
	p := &Pipeline{Transcriber: fake, prepare: copyPrepare}
	results := p.Run(ctx, []string{writeInput(t, t.TempDir(), "talk.mp3")})
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", results[0].Err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no provider calls, got %d", len(fake.calls))
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	p := &Pipeline{Transcriber: &fakeTranscriber{}}
	if results := p.Run(context.Background(), nil); len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
