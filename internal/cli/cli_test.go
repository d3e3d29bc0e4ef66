package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTranscript = `WEBVTT

00:00.000 --> 00:02.500
Hello world

00:02.500 --> 00:05.000
Second line
continues here

`

type cliTestEnv struct {
	dir        string
	configPath string
}

func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	dir := filepath.Join(home, "transcripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	configPath := filepath.Join(home, "config.toml")
	config := "[paths]\ntranscript_dir = \"" + filepath.ToSlash(dir) + "\"\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cliTestEnv{dir: dir, configPath: configPath}
}

func (e cliTestEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.write(t, "talk.vtt", sampleTranscript)
	env.write(t, "talk.mp3", "audio")
	env.write(t, "notes.vtt", "WEBVTT\n")

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	for _, want := range []string{"talk.vtt", "talk.mp3", "notes.vtt"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListCommandEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if !strings.Contains(out, "No transcripts") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestShowCommandHighlightsActiveSegment(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.write(t, "talk.vtt", sampleTranscript)

	out, _, err := runCLI(t, []string{"show", path, "--at", "3"}, env.configPath)
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	if !strings.Contains(out, "Hello world") || !strings.Contains(out, "Second line continues here") {
		t.Fatalf("missing segment text:\n%s", out)
	}

	var marked string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, ">") {
			marked = line
		}
	}
	if !strings.Contains(marked, "Second line") {
		t.Errorf("expected second segment to be marked, got %q", marked)
	}
}

func TestShowCommandRejectsNegativePosition(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.write(t, "talk.vtt", sampleTranscript)

	if _, _, err := runCLI(t, []string{"show", path, "--at=-1"}, env.configPath); err == nil {
		t.Fatal("expected error for negative position")
	}
}

func TestEditCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.write(t, "talk.vtt", sampleTranscript)

	out, _, err := runCLI(t, []string{"edit", path, "1", "Rewritten", "text"}, env.configPath)
	if err != nil {
		t.Fatalf("edit returned error: %v", err)
	}
	if !strings.Contains(out, "Updated segment 1") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := strings.Replace(sampleTranscript, "Second line\ncontinues here", "Rewritten text", 1)
	if string(data) != want {
		t.Errorf("unexpected content:\n%q\nwant\n%q", data, want)
	}
}

func TestEditCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-numeric index", []string{"one", "text"}},
		{"index out of range", []string{"5", "text"}},
		{"negative index", []string{"-1", "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCLITestEnv(t)
			path := env.write(t, "talk.vtt", sampleTranscript)

			args := append([]string{"edit", path, "--"}, tt.args...)
			if _, _, err := runCLI(t, args, env.configPath); err == nil {
				t.Fatal("expected error")
			}
			data, _ := os.ReadFile(path)
			if string(data) != sampleTranscript {
				t.Errorf("file modified on failed edit: %q", data)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	clean := env.write(t, "clean.vtt", sampleTranscript)
	broken := env.write(t, "broken.vtt", "WEBVTT\n\n01:00:00.000 --> 01:00:02.000\nhour form\n")

	out, _, err := runCLI(t, []string{"check", clean}, env.configPath)
	if err != nil {
		t.Fatalf("check returned error for clean file: %v", err)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("unexpected output: %q", out)
	}

	out, _, err = runCLI(t, []string{"check", clean, broken}, env.configPath)
	if !errors.Is(err, errIssuesFound) {
		t.Fatalf("expected errIssuesFound, got %v", err)
	}
	if !strings.Contains(out, "broken.vtt") {
		t.Errorf("expected issue for broken.vtt in output:\n%s", out)
	}
}

func TestTranslateCommandRequiresTargetLanguage(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.write(t, "talk.vtt", sampleTranscript)

	_, _, err := runCLI(t, []string{"translate", path}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "target-language") {
		t.Fatalf("expected missing target-language error, got %v", err)
	}
}

func TestTranslateCommandRequiresAPIKey(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.write(t, "talk.vtt", sampleTranscript)

	_, _, err := runCLI(t, []string{"translate", path, "-t", "spanish"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
	if _, statErr := os.Stat(translationPath(path, "spanish", false)); !os.IsNotExist(statErr) {
		t.Errorf("output should not be created when the key is missing")
	}
}

func TestTranscribeCommandMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"transcribe", filepath.Join(env.dir, "missing.mp3")}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file not found error, got %v", err)
	}
}

func TestTranscribeCommandRequiresAPIKey(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.write(t, "talk.mp3", "audio")

	_, _, err := runCLI(t, []string{"transcribe", path}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestTranslationPath(t *testing.T) {
	tests := []struct {
		input    string
		language string
		overlay  bool
		want     string
	}{
		{"/data/talk.vtt", "Spanish", false, "/data/talk.spanish.vtt"},
		{"/data/talk.vtt", "fr", true, "/data/talk.fr.overlay.vtt"},
		{"talk.vtt", "brazilian portuguese", false, "talk.brazilian-portuguese.vtt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := translationPath(tt.input, tt.language, tt.overlay); got != tt.want {
				t.Errorf("translationPath(%q, %q, %v) = %q, want %q", tt.input, tt.language, tt.overlay, got, tt.want)
			}
		})
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", path}, "")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("unexpected output: %q", out)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", path}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", path, "--force"}, ""); err != nil {
		t.Fatalf("config init --force returned error: %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-secret")
	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	if strings.Contains(out, "sk-secret") {
		t.Errorf("config show leaked the API key:\n%s", out)
	}
	if !strings.Contains(out, "loaded from") || !strings.Contains(out, "transcript_dir") {
		t.Errorf("unexpected config output:\n%s", out)
	}
}
