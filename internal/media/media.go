// Package media recognises audio and video inputs and prepares them for
// transcription with ffmpeg.
package media

import (
	"path/filepath"
	"strings"
)

var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".flac": true,
	".opus": true,
	".wma":  true,
	".alac": true,
	".amr":  true,
	".aiff": true,
	".caf":  true,
}

var videoExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".flv":  true,
	".wmv":  true,
	".mpeg": true,
	".m4v":  true,
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}

// Extensions returns every accepted media extension, audio first.
func Extensions() []string {
	exts := []string{
		".wav", ".mp3", ".m4a", ".aac", ".ogg", ".flac", ".opus", ".wma",
		".alac", ".amr", ".aiff", ".caf",
		".mp4", ".mov", ".avi", ".mkv", ".webm", ".flv", ".wmv", ".mpeg", ".m4v",
	}
	return exts
}
