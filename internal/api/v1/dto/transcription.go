package dto

import (
	"time"

	"audio2text/internal/app/model"
)

// HistoryQuery carries the query parameters of the history endpoint.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// RecordResponse is one transcription result within a session.
type RecordResponse struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Text        string `json:"text"`
	Failed      bool   `json:"failed"`
	Error       string `json:"error,omitempty"`
}

// UploadResponse summarizes a processed batch.
type UploadResponse struct {
	Processed int              `json:"processed"`
	Failed    int              `json:"failed"`
	Records   []RecordResponse `json:"records"`
}

// ListResponse returns every record in the caller's session, oldest first.
type ListResponse struct {
	Records []RecordResponse `json:"records"`
}

// LanguageResponse is one selectable transcription language.
type LanguageResponse struct {
	Display string `json:"display"`
	Code    string `json:"code"`
}

// HistoryEntryResponse is one persisted transcription row.
type HistoryEntryResponse struct {
	ID            int       `json:"id"`
	FileName      string    `json:"file_name"`
	AudioDuration float64   `json:"audio_duration"`
	Transcription string    `json:"transcription,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	HasError      bool      `json:"has_error"`
	ErrorMessage  string    `json:"error_message,omitempty"`
}

// HistoryResponse returns recent persisted transcriptions.
type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

// FromRecord converts a session record into its API representation.
func FromRecord(r model.TranscriptRecord) RecordResponse {
	resp := RecordResponse{
		Key:         r.Key,
		DisplayName: r.DisplayName,
		Text:        r.DisplayText(),
		Failed:      r.Failed(),
	}
	if r.Failed() {
		resp.Error = r.Err.Error()
	}
	return resp
}

// FromRecords converts a batch of session records.
func FromRecords(records []model.TranscriptRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

// FromTranscription converts a persisted row into its API representation.
func FromTranscription(t model.Transcription) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:            t.ID,
		FileName:      t.FileName,
		AudioDuration: t.AudioDuration,
		Transcription: t.Transcription,
		CreatedAt:     t.CreatedAt,
		HasError:      t.HasError != 0,
		ErrorMessage:  t.ErrorMessage,
	}
}
