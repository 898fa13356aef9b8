package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"audio2text/internal/app"
	"audio2text/internal/app/model"
	"audio2text/internal/app/util/files"
	"audio2text/internal/config"
)

var (
	audioDir  string
	language  string
	outputDir string
)

func init() {
	Cmd.Flags().StringVarP(&audioDir, "audioDir", "d", "",
		"directory to scan for .wav and .mp3 files, used when no files are given as arguments")
	Cmd.Flags().StringVarP(&language, "language", "l", "",
		"transcription language code, empty auto-detects")
	Cmd.Flags().StringVarP(&outputDir, "outputDir", "o", ".",
		"directory transcripts are written to")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [files...]",
	Short: "Batch-convert local audio files to text without starting a server",
	Long: `Batch-convert local audio files to text without starting a server

- Pass files as arguments, or a directory with --audioDir
- Transcripts are written to --outputDir as <name>_transcript.txt
- A failed file does not stop the rest of the batch
- With A2T_HISTORY_DB set, files already transcribed successfully are skipped`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		paths, err := collectPaths(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .wav or .mp3 files to transcribe")
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		history, err := app.InitializeHistory(cfg)
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
		}

		pipe, err := app.InitializePipeline(cfg, history, logger)
		if err != nil {
			return err
		}

		items := make([]model.UploadedItem, 0, len(paths))
		for _, path := range paths {
			name := filepath.Base(path)
			if history != nil {
				count, err := history.CheckIfProcessed(name)
				if err != nil {
					return err
				}
				if count > 0 {
					fmt.Printf("skipping %s, already transcribed\n", name)
					continue
				}
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			items = append(items, model.UploadedItem{
				Filename: name,
				Data:     data,
			})
		}
		if len(items) == 0 {
			fmt.Println("nothing to do")
			return nil
		}

		progress := mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		bar := progress.AddBar(int64(len(items)),
			mpb.PrependDecorators(
				decor.Name("transcribing ", decor.WC{C: decor.DindentRight}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WCSyncSpace),
			),
		)
		pipe.OnProgress = func(done, total int, record model.TranscriptRecord) {
			bar.Increment()
		}

		records := pipe.Run(context.Background(), items, language)
		progress.Wait()

		if err := files.EnsureDir(outputDir); err != nil {
			return err
		}

		failed := 0
		for _, record := range records {
			if record.Failed() {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", record.DisplayName, record.Err)
				continue
			}
			outPath := filepath.Join(outputDir, transcriptName(record.DisplayName))
			if err := os.WriteFile(outPath, []byte(record.Text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Printf("%s -> %s\n", record.DisplayName, outPath)
		}

		fmt.Printf("done: %d transcribed, %d failed\n", len(records)-failed, failed)
		if failed == len(records) {
			return fmt.Errorf("all %d files failed", failed)
		}
		return nil
	},
}

func collectPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if audioDir == "" {
		return nil, fmt.Errorf("pass audio files as arguments or set --audioDir")
	}

	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", audioDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".wav", ".mp3":
			paths = append(paths, filepath.Join(audioDir, entry.Name()))
		}
	}
	return paths, nil
}

func transcriptName(displayName string) string {
	return files.SanitizeBaseName(displayName) + "_transcript.txt"
}
