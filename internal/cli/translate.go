package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/transcript"
	"github.com/mgpai22/scribe/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var (
		targetLanguage string
		inputLanguage  string
		provider       string
		model          string
		prompt         string
		apiKey         string
		output         string
		overlay        bool
		batchSize      int
		concurrency    int
	)

	cmd := &cobra.Command{
		Use:   "translate <file.vtt>",
		Short: "Translate a transcript into another language",
		Long: `Translate every segment of a WebVTT transcript with an LLM provider.

The source file is never modified. The translation is written to
<name>.<lang>.vtt, or <name>.<lang>.overlay.vtt with --overlay, which keeps
the original text below each translated line.

Examples:
  scribe translate talk.vtt -t spanish
  scribe translate talk.vtt -t fr --overlay --provider anthropic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger

			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("file not found: %s", input)
			}

			if provider == "" {
				provider = cfg.Translation.Provider
			}
			if model == "" {
				model = cfg.Translation.Model
			}
			if batchSize <= 0 {
				batchSize = cfg.Translation.BatchSize
			}
			if concurrency <= 0 {
				concurrency = cfg.Translation.Concurrency
			}
			if output == "" {
				output = translationPath(input, targetLanguage, overlay)
			}
			if sameFile(input, output) {
				return fmt.Errorf("output must differ from the input transcript")
			}

			key, err := ctx.apiKey(apiKey, provider)
			if err != nil {
				return err
			}

			translator, err := translate.Factory(
				cmd.Context(),
				translate.Provider(provider),
				key,
				translate.Options{
					InputLanguage:  inputLanguage,
					TargetLanguage: targetLanguage,
					Model:          model,
					Prompt:         prompt,
					BatchSize:      batchSize,
					Concurrency:    concurrency,
				},
			)
			if err != nil {
				return fmt.Errorf("failed to create translator: %w", err)
			}

			segments, err := transcript.Parse(input)
			if err != nil {
				return err
			}
			if len(segments) == 0 {
				return fmt.Errorf("no segments found in %s", input)
			}

			logger.Infow("Translating transcript",
				"input", input,
				"segments", len(segments),
				"provider", provider,
				"target", targetLanguage,
				"overlay", overlay,
			)

			results, err := translator.Translate(cmd.Context(), translate.Items(segments))
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}

			if err := copyFile(input, output); err != nil {
				return err
			}
			if err := translate.Apply(output, segments, results, overlay); err != nil {
				_ = os.Remove(output)
				return err
			}

			logger.Infow("Translation written", "output", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Translated %d segments to %s\n", len(results), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetLanguage, "target-language", "t", "", "Target language (e.g., spanish, fr)")
	cmd.Flags().StringVarP(&inputLanguage, "language", "l", "", "Source language of the transcript (auto-detect if empty)")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Translation provider: gemini, openai or anthropic (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Provider model override")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Additional instructions for the translator")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Provider API key (or set it in config / environment)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output transcript path")
	cmd.Flags().BoolVar(&overlay, "overlay", false, "Keep the original text below each translation")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Segments per request (default from config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Requests in flight (default from config)")
	_ = cmd.MarkFlagRequired("target-language")

	return cmd
}

// <dir>/<stem>.<lang>[.overlay].vtt
func translationPath(input, language string, overlay bool) string {
	lang := strings.ToLower(strings.Join(strings.Fields(language), "-"))
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	if overlay {
		return fmt.Sprintf("%s.%s.overlay.vtt", stem, lang)
	}
	return fmt.Sprintf("%s.%s.vtt", stem, lang)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
