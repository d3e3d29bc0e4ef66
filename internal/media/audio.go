package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// settings for the audio handed to a transcription provider
type AudioOptions struct {
	Format     string // Output format (mp3, aac, flac, wav)
	SampleRate int    // Sample rate in Hz
	Channels   int    // Number of channels (1=mono, 2=stereo)
	Bitrate    string // Bitrate for lossy formats (e.g., "64k")
}

// defaults for transcription
func DefaultAudioOptions() AudioOptions {
	return AudioOptions{
		Format:     "mp3",
		SampleRate: 16000,
		Channels:   1,
		Bitrate:    "64k",
	}
}

// Ext returns the file extension matching the output format.
func (o AudioOptions) Ext() string {
	switch o.Format {
	case "aac", "flac", "wav":
		return "." + o.Format
	default:
		return ".mp3"
	}
}

// PrepareAudio converts any supported audio or video input into a compact
// audio file at outputPath. Video streams are dropped.
func PrepareAudio(ctx context.Context, inputPath, outputPath string, opts AudioOptions) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not found: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	bins, err := Binaries()
	if err != nil {
		return err
	}

	args := audioStream(inputPath, outputPath, opts).GetArgs()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bins.FFmpeg, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("audio conversion failed: %w: %s", err, lastLine(stderr.String()))
	}
	return nil
}

func audioStream(inputPath, outputPath string, opts AudioOptions) *ffmpeg.Stream {
	defaults := DefaultAudioOptions()
	if opts.SampleRate <= 0 {
		opts.SampleRate = defaults.SampleRate
	}
	if opts.Channels <= 0 {
		opts.Channels = defaults.Channels
	}

	kwargs := ffmpeg.KwArgs{
		"vn": "",              // No video
		"ar": opts.SampleRate, // Sample rate
		"ac": opts.Channels,   // Channels
	}

	switch opts.Format {
	case "aac":
		kwargs["acodec"] = "aac"
		if opts.Bitrate != "" {
			kwargs["b:a"] = opts.Bitrate
		}
	case "flac":
		kwargs["acodec"] = "flac"
	case "wav":
		kwargs["acodec"] = "pcm_s16le"
	default:
		kwargs["acodec"] = "libmp3lame"
		if opts.Bitrate != "" {
			kwargs["b:a"] = opts.Bitrate
		}
	}

	return ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput()
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}
