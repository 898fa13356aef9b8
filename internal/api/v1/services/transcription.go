package services

import (
	"context"
	"errors"
	"log/slog"

	"audio2text/internal/app/model"
	"audio2text/internal/app/pipeline"
	"audio2text/internal/app/repository"
	"audio2text/internal/app/session"
)

// ErrBusy is returned when a transcription run is already in progress.
var ErrBusy = errors.New("a transcription run is already in progress")

// TranscriptionService exposes the transcription pipeline and the
// session-scoped result stores to the HTTP handlers.
type TranscriptionService interface {
	Transcribe(ctx context.Context, sessionID string, items []model.UploadedItem, languageCode string) ([]model.TranscriptRecord, error)
	Records(sessionID string) []model.TranscriptRecord
	Record(sessionID, key string) (model.TranscriptRecord, bool)
	Remove(sessionID, key string)
	History(limit int) ([]model.Transcription, error)
}

type transcriptionService struct {
	pipeline *pipeline.Pipeline
	sessions *session.Manager
	history  repository.TranscriptionDAO // nil disables history
	logger   *slog.Logger

	// gate serializes pipeline runs; transcription backends are not
	// safe to share across concurrent batches.
	gate chan struct{}
}

// NewTranscriptionService creates the service. history may be nil.
func NewTranscriptionService(p *pipeline.Pipeline, sessions *session.Manager,
	history repository.TranscriptionDAO, logger *slog.Logger) TranscriptionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &transcriptionService{
		pipeline: p,
		sessions: sessions,
		history:  history,
		logger:   logger,
		gate:     make(chan struct{}, 1),
	}
}

// Transcribe runs one batch and replaces the session's previous results,
// mirroring a fresh upload starting a fresh result set. Only one batch runs
// at a time; a second caller gets ErrBusy immediately instead of queueing
// behind a long transcription.
func (s *transcriptionService) Transcribe(ctx context.Context, sessionID string,
	items []model.UploadedItem, languageCode string) ([]model.TranscriptRecord, error) {
	select {
	case s.gate <- struct{}{}:
		defer func() { <-s.gate }()
	default:
		return nil, ErrBusy
	}

	records := s.pipeline.Run(ctx, items, languageCode)
	s.sessions.Get(sessionID).Replace(records)

	s.logger.Info("batch complete",
		"session", sessionID,
		"items", len(items),
		"failed", countFailed(records),
	)
	return records, nil
}

// Records returns every record in the session, oldest first.
func (s *transcriptionService) Records(sessionID string) []model.TranscriptRecord {
	return s.sessions.Get(sessionID).All()
}

// Record looks up a single record by key.
func (s *transcriptionService) Record(sessionID, key string) (model.TranscriptRecord, bool) {
	return s.sessions.Get(sessionID).Get(key)
}

// Remove drops a record from the session.
func (s *transcriptionService) Remove(sessionID, key string) {
	s.sessions.Get(sessionID).Remove(key)
}

// History returns the most recent persisted transcriptions. Without a
// configured history database it returns an empty slice.
func (s *transcriptionService) History(limit int) ([]model.Transcription, error) {
	if s.history == nil {
		return []model.Transcription{}, nil
	}
	return s.history.GetRecent(limit)
}

func countFailed(records []model.TranscriptRecord) int {
	n := 0
	for _, r := range records {
		if r.Failed() {
			n++
		}
	}
	return n
}
