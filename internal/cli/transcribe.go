package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgpai22/scribe/internal/media"
	"github.com/mgpai22/scribe/internal/transcribe"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir      string
		provider       string
		model          string
		language       string
		transcriptLang string
		prompt         string
		apiKey         string
		concurrency    int
	)

	cmd := &cobra.Command{
		Use:   "transcribe [media_file...]",
		Short: "Transcribe audio or video files into WebVTT",
		Long: `Transcribe one or more audio or video files.

Each file is copied into the output directory, converted to compact mono
audio, sent to the transcription provider, and written as <name>.vtt next to
the copied media so the pair can be played back together.

A failure on one file does not stop the others.

Examples:
  scribe transcribe interview.mp3
  scribe transcribe lecture.mp4 talk.m4a --output-dir ~/transcripts
  scribe transcribe podcast.mp3 --provider gemini --language es`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger

			if outputDir == "" {
				outputDir = cfg.Paths.TranscriptDir
			}
			if provider == "" {
				provider = cfg.Transcription.Provider
			}
			if model == "" {
				model = cfg.Transcription.Model
			}
			if language == "" {
				language = cfg.Transcription.Language
			}
			if concurrency <= 0 {
				concurrency = cfg.Transcription.Concurrency
			}

			for _, f := range args {
				if _, err := os.Stat(f); err != nil {
					return fmt.Errorf("file not found: %s", f)
				}
			}

			key, err := ctx.apiKey(apiKey, provider)
			if err != nil {
				return err
			}

			transcriber, err := transcribe.Factory(
				cmd.Context(),
				transcribe.Provider(provider),
				key,
				transcribe.Options{
					Language:           language,
					TranscriptLanguage: transcriptLang,
					Model:              model,
					Prompt:             prompt,
				},
			)
			if err != nil {
				return fmt.Errorf("failed to create transcriber: %w", err)
			}

			logger.Infow("Starting transcription",
				"files", len(args),
				"provider", provider,
				"output_dir", outputDir,
				"concurrency", concurrency,
			)

			pipeline := &transcribe.Pipeline{
				Transcriber: transcriber,
				OutputDir:   outputDir,
				Audio:       media.DefaultAudioOptions(),
				Concurrency: concurrency,
				Progress: func(r transcribe.FileResult) {
					if r.Err != nil {
						logger.Warnw("Transcription failed", "input", r.Input, "error", r.Err)
						return
					}
					logger.Infow("Transcript written", "input", r.Input, "transcript", r.Transcript, "cues", r.Cues)
				},
			}

			results := pipeline.Run(cmd.Context(), args)

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				status := "ok"
				out := filepath.Base(r.Transcript)
				if r.Err != nil {
					status = "failed"
					out = "-"
				}
				rows = append(rows, []string{filepath.Base(r.Input), out, strconv.Itoa(r.Cues), status})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Input", "Transcript", "Cues", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))

			failed := transcribe.Failed(results)
			for _, r := range failed {
				fmt.Fprintln(cmd.ErrOrStderr(), r.Err)
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d files failed", len(failed), len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for staged media and transcripts (default from config)")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Transcription provider: openai or gemini (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Provider model override")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language code of the audio (e.g., en, es, fr)")
	cmd.Flags().StringVar(&transcriptLang, "transcript-language", "native", "Output language for transcript (e.g., 'english', or 'native' for original language)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Extra instructions or vocabulary for the provider")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Provider API key (or set it in config / environment)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Number of files transcribed in parallel (default from config)")

	return cmd
}
