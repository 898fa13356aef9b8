package model

import "time"

// Transcription is one row of persisted transcription history.
type Transcription struct {
	ID            int
	FileName      string
	AudioDuration float64
	Transcription string
	CreatedAt     time.Time
	HasError      int
	ErrorMessage  string
}
