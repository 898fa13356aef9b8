package repository

import (
	"audio2text/internal/app/model"
)

// TranscriptionDAO persists transcription history across process restarts.
// The session result store stays in memory; this is an audit trail only.
type TranscriptionDAO interface {
	// Record stores one finished item, successful or not.
	Record(fileName string, audioDuration float64, transcription string, hasError int, errorMessage string) error

	// GetRecent returns up to limit rows, newest first.
	GetRecent(limit int) ([]model.Transcription, error)

	// CheckIfProcessed reports how many successful rows exist for fileName.
	CheckIfProcessed(fileName string) (int, error)

	Close() error
}
