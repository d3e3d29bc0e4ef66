package media

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

const (
	ffmpegPathEnv  = "SCRIBE_FFMPEG_PATH"
	ffprobePathEnv = "SCRIBE_FFPROBE_PATH"
)

// ErrBinaryNotFound is returned when ffmpeg or ffprobe cannot be located.
var ErrBinaryNotFound = errors.New("binary not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	binariesOnce sync.Once
	binariesErr  error
	binaries     BinaryPaths
)

// Binaries locates ffmpeg and ffprobe once per process. Explicit paths in
// SCRIBE_FFMPEG_PATH and SCRIBE_FFPROBE_PATH win over PATH lookup.
func Binaries() (BinaryPaths, error) {
	binariesOnce.Do(func() {
		binaries, binariesErr = resolveBinaries(os.Getenv, exec.LookPath)
	})
	return binaries, binariesErr
}

func resolveBinaries(getenv func(string) string, lookPath func(string) (string, error)) (BinaryPaths, error) {
	ffmpegPath, err := resolveBinary("ffmpeg", getenv(ffmpegPathEnv), lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := resolveBinary("ffprobe", getenv(ffprobePathEnv), lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func resolveBinary(name, explicit string, lookPath func(string) (string, error)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	found, err := lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s (install it or set %s)", ErrBinaryNotFound, name, envFor(name))
	}
	return found, nil
}

func envFor(name string) string {
	if name == "ffprobe" {
		return ffprobePathEnv
	}
	return ffmpegPathEnv
}
