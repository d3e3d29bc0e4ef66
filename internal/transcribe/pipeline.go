package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mgpai22/scribe/internal/library"
	"github.com/mgpai22/scribe/internal/media"
	"github.com/mgpai22/scribe/internal/transcript"
)

var (
	// ErrUnsupportedMedia is returned for inputs with an unknown extension.
	ErrUnsupportedMedia = errors.New("unsupported media type")
	// ErrNoCues is returned when a provider recognised no speech.
	ErrNoCues = errors.New("transcription produced no cues")
)

// outcome of transcribing one input file
type FileResult struct {
	Input      string
	Media      string
	Transcript string
	Cues       int
	Err        error
}

// Pipeline stages media into an output directory, converts it to compact
// audio, transcribes it, and writes a .vtt next to the staged media.
type Pipeline struct {
	Transcriber Transcriber
	OutputDir   string
	Audio       media.AudioOptions
	Concurrency int
	// Progress, when set, is called once per finished file.
	Progress func(FileResult)

	prepare func(ctx context.Context, in, out string, opts media.AudioOptions) error
}

// Run processes files with bounded concurrency. Failures are reported per
// file; results keep the input order.
func (p *Pipeline) Run(ctx context.Context, files []string) []FileResult {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	type job struct {
		index int
		path  string
	}
	workChan := make(chan job, len(files))
	for i, f := range files {
		workChan <- job{index: i, path: f}
	}
	close(workChan)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for j := range workChan {
				res := p.runOne(ctx, j.path)
				results[j.index] = res
				if p.Progress != nil {
					mu.Lock()
					p.Progress(res)
					mu.Unlock()
				}
			}
		})
	}
	wg.Wait()

	return results
}

func (p *Pipeline) runOne(ctx context.Context, input string) FileResult {
	res := FileResult{Input: input}
	if err := p.process(ctx, &res); err != nil {
		res.Err = fmt.Errorf("unable to transcribe %s: %w", filepath.Base(input), err)
	}
	return res
}

func (p *Pipeline) process(ctx context.Context, res *FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !media.IsMediaFile(res.Input) {
		return ErrUnsupportedMedia
	}
	if p.Transcriber == nil {
		return errors.New("no transcriber configured")
	}

	outputDir := p.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(res.Input)
	}

	staged, err := library.Stage(res.Input, outputDir)
	if err != nil {
		return err
	}
	res.Media = staged

	opts := p.Audio
	if opts.Format == "" {
		opts = media.DefaultAudioOptions()
	}

	tempDir, err := os.MkdirTemp("", "scribe-audio-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	stem := strings.TrimSuffix(filepath.Base(staged), filepath.Ext(staged))
	audioPath := filepath.Join(tempDir, stem+opts.Ext())

	prepare := p.prepare
	if prepare == nil {
		prepare = media.PrepareAudio
	}
	if err := prepare(ctx, staged, audioPath, opts); err != nil {
		return fmt.Errorf("failed to prepare audio: %w", err)
	}

	result, err := p.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return err
	}
	if result == nil || len(result.Cues) == 0 {
		return ErrNoCues
	}

	out := library.TranscriptPath(staged)
	if err := transcript.WriteFile(out, result.Cues); err != nil {
		return err
	}
	res.Transcript = out
	res.Cues = len(result.Cues)
	return nil
}

// Failed returns the results that carry an error.
func Failed(results []FileResult) []FileResult {
	var failed []FileResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
