package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// media file information reported by ffprobe
type Info struct {
	Path     string
	Duration time.Duration
	HasAudio bool
	HasVideo bool
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// Probe runs ffprobe against path.
func Probe(ctx context.Context, path string) (*Info, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("media file not found: %w", err)
	}

	bins, err := Binaries()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bins.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbe(out.Bytes())
	if err != nil {
		return nil, err
	}
	info.Path = path
	return info, nil
}

// Duration returns the container duration of an audio/video file.
func Duration(ctx context.Context, path string) (time.Duration, error) {
	info, err := Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

func parseProbe(data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{}
	if raw := strings.TrimSpace(probe.Format.Duration); raw != "" {
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "audio":
			info.HasAudio = true
		case "video":
			info.HasVideo = true
		}
	}
	return info, nil
}
