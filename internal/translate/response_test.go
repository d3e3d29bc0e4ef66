package translate

import (
	"strings"
	"testing"
)

func TestExtractResults(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"index": 0, "text": "こんにちは"},
				{"index": 1, "text": "さようなら"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble with valid array",
			input: `Here is the translation:
			[
				{"index": 0, "text": "Bonjour"},
				{"index": 1, "text": "Au revoir"}
			]`,
			wantCount: 2,
		},
		{
			name: "valid array with trailing text",
			input: `[
				{"index": 0, "text": "Hola"}
			]
			I hope this helps!`,
			wantCount: 1,
		},
		{
			name:      "code fenced JSON",
			input:     `[{"index": 0, "text": "翻訳されたテキスト"}]`,
			wantCount: 1,
		},
		{
			name: "wrapper object with results key",
			input: `{"results": [
				{"index": 0, "text": "Translated"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with translations key",
			input: `{"translations": [
				{"index": 0, "text": "Übersetzt"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with data key",
			input: `{"data": [
				{"index": 0, "text": "Переведено"}
			]}`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   `This is just plain text.`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"index": 0, "text": "incomplete"`,
			wantErr: true,
		},
		{
			name:    "array with empty text",
			input:   `[{"index": 0, "text": ""}]`,
			wantErr: true,
		},
		{
			name: "complex preamble",
			input: `I've translated the segments for you. Here is the JSON:

			[
				{"index": 0, "text": "First translation"},
				{"index": 1, "text": "Second translation"}
			]

			Let me know if you need anything else!`,
			wantCount: 2,
		},
		{
			name: "invalid escape in text",
			input: `[
				{"index": 0, "text": "That's why they are fuming...\Nthese Babu and Pappu."}
			]`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := extractResults(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("got %d results, want %d", len(results), tt.wantCount)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `[{"index": 0, "text": "hello"}]`,
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "json code fence",
			input: "```json\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "plain code fence",
			input: "```\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "with leading/trailing whitespace",
			input: "  \n\n```json\n[{\"index\": 0}]\n```\n\n  ",
			want:  `[{"index": 0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateResults(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    bool
	}{
		{"empty slice", []Result{}, false},
		{"nil slice", nil, false},
		{
			"result with text",
			[]Result{{Index: 0, Text: "hello"}},
			true,
		},
		{
			"result with empty text",
			[]Result{{Index: 0, Text: ""}},
			false,
		},
		{
			"multiple results one valid",
			[]Result{
				{Index: 0, Text: ""},
				{Index: 1, Text: "valid"},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateResults(tt.results); got != tt.want {
				t.Errorf("validateResults() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	translator := &GeminiTranslator{
		options: Options{
			InputLanguage:  "English",
			TargetLanguage: "Japanese",
		},
	}

	items := []Item{
		{Index: 0, Text: "Hello world"},
		{Index: 1, Text: "Goodbye"},
	}

	prompt := BuildPrompt(translator.options, items)

	if !strings.Contains(prompt, "English transcript segments") {
		t.Error("prompt should contain input language")
	}
	if !strings.Contains(prompt, "to Japanese") {
		t.Error("prompt should contain target language")
	}
	if !strings.Contains(prompt, "Hello world") {
		t.Error("prompt should contain input text")
	}
	if !strings.Contains(prompt, `"index": 0`) {
		t.Error("prompt should contain index")
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	translator := &GeminiTranslator{
		options: Options{
			TargetLanguage: "Spanish",
		},
	}

	items := []Item{
		{Index: 0, Text: "Hello"},
	}

	prompt := BuildPrompt(translator.options, items)

	if strings.Contains(prompt, "English") || strings.Contains(prompt, "from ") {
		t.Error("prompt should not contain input language when not specified")
	}
	if !strings.Contains(prompt, "to Spanish") {
		t.Error("prompt should contain target language")
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"a\\Nb"`, `"a\\Nb"`},
		{`"a\Nb"`, `"a\\Nb"`},
		{`"line\nbreak"`, `"line\nbreak"`},
		{`"quote \" ok"`, `"quote \" ok"`},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		if got := fixInvalidEscapes(tt.in); got != tt.want {
			t.Errorf("fixInvalidEscapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseResults(t *testing.T) {
	items := []Item{{Index: 3, Text: "one"}, {Index: 4, Text: "two"}}

	results, err := parseResults("```json\n[{\"index\": 4, \"text\": \"deux\"}, {\"index\": 3, \"text\": \"un\"}]\n```", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Index != 3 || results[0].Text != "un" || results[1].Text != "deux" {
		t.Errorf("results not sorted by index: %+v", results)
	}

	if _, err := parseResults(`[{"index": 3, "text": "un"}]`, items); err == nil {
		t.Error("expected error for missing result")
	}
	if _, err := parseResults(`[{"index": 3, "text": "un"}, {"index": 9, "text": "neuf"}]`, items); err == nil {
		t.Error("expected error for unexpected index")
	}
}
