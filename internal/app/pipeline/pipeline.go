// Package pipeline orchestrates upload → convert → transcribe → cleanup for
// a batch of uploaded items. Failures are isolated per item: one bad file
// never aborts the batch, and every scratch file an item allocated is
// released before the next item starts.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"audio2text/internal/app/api"
	"audio2text/internal/app/audio"
	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
	"audio2text/internal/app/repository"
	"audio2text/internal/app/tempfile"
	"audio2text/internal/app/util/hash"
)

// FormatConverter is the converter capability the pipeline needs; satisfied
// by audio.Converter.
type FormatConverter interface {
	Available() bool
	ConvertToWav(ctx context.Context, inputPath, outputPath string) error
}

// Pipeline processes batches of uploaded audio items sequentially.
type Pipeline struct {
	transcriber api.Transcriber
	converter   FormatConverter
	store       *tempfile.Store
	history     repository.TranscriptionDAO // nil disables history recording
	logger      *slog.Logger

	// OnProgress, when set, is called after each item finishes.
	OnProgress func(done, total int, record model.TranscriptRecord)
}

// New creates a pipeline. history may be nil.
func New(transcriber api.Transcriber, converter FormatConverter, store *tempfile.Store,
	history repository.TranscriptionDAO, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		transcriber: transcriber,
		converter:   converter,
		store:       store,
		history:     history,
		logger:      logger,
	}
}

// Run processes items in submission order and returns one record per item,
// in the same order. It never returns an error: per-item failures are data,
// carried in the records.
func (p *Pipeline) Run(ctx context.Context, items []model.UploadedItem, language string) []model.TranscriptRecord {
	records := make([]model.TranscriptRecord, 0, len(items))
	seen := make(map[string]bool, len(items))

	for i, item := range items {
		key := hash.ContentKey(item.Data)
		if seen[key] {
			key = fmt.Sprintf("%s-%d", key, i)
		}
		seen[key] = true

		text, duration, err := p.processItem(ctx, item, language)
		record := model.TranscriptRecord{
			Key:         key,
			DisplayName: item.Filename,
			Text:        text,
			Err:         err,
		}

		if err != nil {
			p.logger.Warn("item failed",
				"file", item.Filename,
				"error", err,
			)
		} else {
			p.logger.Info("item transcribed",
				"file", item.Filename,
				"duration_sec", duration,
				"chars", len(text),
			)
		}

		p.recordHistory(item.Filename, duration, record)
		records = append(records, record)

		if p.OnProgress != nil {
			p.OnProgress(i+1, len(items), record)
		}
	}
	return records
}

// processItem runs one item to a terminal state. All scratch files are
// released before it returns, success or failure.
func (p *Pipeline) processItem(ctx context.Context, item model.UploadedItem, language string) (text string, duration float64, err error) {
	ext := strings.ToLower(filepath.Ext(item.Filename))
	switch ext {
	case ".wav", ".mp3":
	default:
		return "", 0, apperrors.WithCause(apperrors.ErrUnsupportedFormat,
			apperrors.Newf("%q is not a .wav or .mp3 file", item.Filename))
	}

	var temps []string
	defer func() {
		for _, path := range temps {
			if rerr := p.store.Release(path); rerr != nil {
				p.logger.Warn("failed to release temp file", "path", path, "error", rerr)
			}
		}
	}()

	rawPath, err := p.store.Allocate(item.Filename, ext)
	if err != nil {
		return "", 0, apperrors.Wrap(err, "failed to stage upload")
	}
	temps = append(temps, rawPath)

	if err := os.WriteFile(rawPath, item.Data, 0o600); err != nil {
		return "", 0, apperrors.Wrap(err, "failed to write upload to scratch storage")
	}

	audioPath := rawPath
	if ext == ".mp3" {
		if !p.converter.Available() {
			return "", 0, apperrors.ErrFFmpegMissing
		}
		wavPath, err := p.store.Allocate(item.Filename, ".wav")
		if err != nil {
			return "", 0, apperrors.Wrap(err, "failed to allocate conversion output")
		}
		temps = append(temps, wavPath)

		if err := p.converter.ConvertToWav(ctx, rawPath, wavPath); err != nil {
			return "", 0, err
		}
		audioPath = wavPath
	}

	// Duration is best-effort metadata for the history trail.
	if sec, derr := audio.WavSeconds(audioPath); derr == nil {
		duration = sec
	}

	text, err = p.transcriber.Transcript(ctx, audioPath, language)
	if err != nil {
		return "", duration, apperrors.WithCause(apperrors.ErrTranscriptionFailed, err)
	}
	return text, duration, nil
}

func (p *Pipeline) recordHistory(fileName string, duration float64, record model.TranscriptRecord) {
	if p.history == nil {
		return
	}
	hasError := 0
	errorMessage := ""
	if record.Err != nil {
		hasError = 1
		errorMessage = record.Err.Error()
	}
	if err := p.history.Record(fileName, duration, record.Text, hasError, errorMessage); err != nil {
		p.logger.Warn("failed to record history", "file", fileName, "error", err)
	}
}
