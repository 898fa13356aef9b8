// Package provider selects and instruments the configured transcription
// backend.
package provider

import (
	"fmt"
	"log/slog"
	"time"

	"audio2text/internal/app/api"
	openaiapi "audio2text/internal/app/api/openai"
	"audio2text/internal/app/api/whisper_cpp"
	"audio2text/internal/app/api/whisper_server"
	"audio2text/internal/app/tempfile"
)

// Known provider names.
const (
	NameOpenAI        = "openai"
	NameWhisperCpp    = "whisper_cpp"
	NameWhisperServer = "whisper_server"
)

// Settings carries everything the factory needs to build any variant. Only
// the fields of the selected provider are consulted.
type Settings struct {
	Name string

	// openai
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// whisper_cpp
	WhisperBinary    string
	WhisperModel     string
	WhisperExtraArgs string

	// whisper_server
	ServerURL          string
	ServerChunkSeconds int
	ServerTimeout      time.Duration

	// fixed source language for backends that need one
	Language string
}

// New builds the configured transcriber, wrapped with metrics. store is
// used by variants that write scratch chunk files.
func New(s Settings, store *tempfile.Store, logger *slog.Logger) (api.Transcriber, error) {
	var (
		t   api.Transcriber
		err error
	)

	switch s.Name {
	case NameOpenAI:
		client, cerr := openaiapi.NewClient(s.OpenAIAPIKey, s.OpenAIBaseURL)
		if cerr != nil {
			return nil, cerr
		}
		t = openaiapi.NewRemoteTranscriber(client, s.OpenAIModel)

	case NameWhisperCpp:
		t, err = whisper_cpp.NewLocalTranscriber(s.WhisperBinary, s.WhisperModel, s.WhisperExtraArgs, logger)

	case NameWhisperServer:
		t, err = whisper_server.NewServerTranscriber(whisper_server.Config{
			BaseURL:      s.ServerURL,
			Language:     s.Language,
			ChunkSeconds: s.ServerChunkSeconds,
			Timeout:      s.ServerTimeout,
		}, store, logger)

	default:
		return nil, fmt.Errorf("unknown transcription provider %q (supported: %s, %s, %s)",
			s.Name, NameOpenAI, NameWhisperCpp, NameWhisperServer)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", s.Name, err)
	}

	return WithMetrics(s.Name, t), nil
}
