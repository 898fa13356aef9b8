// Package openai implements remote transcription through the OpenAI audio
// API. The credential comes from configuration, never from source.
package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the transcription model used when none is configured.
const DefaultModel = "gpt-4o-transcribe"

// RemoteTranscriber implements api.Transcriber using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewClient builds an OpenAI client. baseURL overrides the API endpoint
// (used for tests and compatible gateways).
func NewClient(apiKey, baseURL string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found - set OPENAI_API_KEY in your environment or .env file")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, model string) *RemoteTranscriber {
	if model == "" {
		model = DefaultModel
	}
	return &RemoteTranscriber{client: client, model: model}
}

// Transcript uploads the audio file and returns the transcript text. The
// remote service detects the language itself; a non-empty hint is forwarded.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
	}
	if language != "" && language != "auto" {
		req.Language = language
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("could not understand audio - try a file with clearer speech")
	}
	return text, nil
}
