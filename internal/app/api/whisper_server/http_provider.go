// Package whisper_server implements transcription via HTTP against a
// whisper-server instance. The endpoint needs no credential, but commonly
// caps request duration, so long inputs are split into bounded chunks that
// are transcribed sequentially and concatenated in order.
package whisper_server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audio2text/internal/app/audio"
	"audio2text/internal/app/tempfile"
)

// Config represents configuration for the whisper-server HTTP API.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	InferencePath string        `yaml:"inference_path"`
	Timeout       time.Duration `yaml:"timeout"`
	Language      string        `yaml:"language"`
	ChunkSeconds  int           `yaml:"chunk_seconds"`
}

// ServerTranscriber implements api.Transcriber against a whisper-server
// inference endpoint.
type ServerTranscriber struct {
	config Config
	client *http.Client
	store  *tempfile.Store
	logger *slog.Logger
}

// inferenceResponse is the JSON body returned by whisper-server.
type inferenceResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// NewServerTranscriber creates a transcriber for the given whisper-server.
// store supplies scratch paths for chunk files.
func NewServerTranscriber(config Config, store *tempfile.Store, logger *slog.Logger) (*ServerTranscriber, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("whisper server base URL is required")
	}
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.ChunkSeconds == 0 {
		config.ChunkSeconds = 60
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ServerTranscriber{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		store:  store,
		logger: logger,
	}, nil
}

// Transcript sends the audio to the server. Inputs longer than the chunk
// threshold are split first; chunk transcripts are joined in temporal order.
func (st *ServerTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	if language == "" {
		language = st.config.Language
	}

	seconds, err := audio.WavSeconds(inputFilePath)
	if err != nil {
		// Not a readable wav header; let the server decide.
		return st.inference(ctx, inputFilePath, language)
	}
	if seconds <= float64(st.config.ChunkSeconds) {
		return st.inference(ctx, inputFilePath, language)
	}

	chunks, err := audio.SplitWav(inputFilePath, st.config.ChunkSeconds, st.store)
	if err != nil {
		return "", fmt.Errorf("failed to split audio for chunked transcription: %w", err)
	}
	defer func() {
		for _, c := range chunks {
			st.store.Release(c)
		}
	}()

	st.logger.Info("transcribing in chunks",
		"input", inputFilePath,
		"duration_sec", seconds,
		"chunks", len(chunks),
	)

	texts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		text, err := st.inference(ctx, chunk, language)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d failed: %w", i+1, len(chunks), err)
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, " "), nil
}

func (st *ServerTranscriber) inference(ctx context.Context, path string, language string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to buffer audio file: %w", err)
	}
	writer.WriteField("response_format", "json")
	if language != "" && language != "auto" {
		writer.WriteField("language", language)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := strings.TrimRight(st.config.BaseURL, "/") + st.config.InferencePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := st.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper server request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read whisper server response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper server returned %d: %s", resp.StatusCode, truncate(string(respBody), 256))
	}

	var parsed inferenceResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse whisper server response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("whisper server error: %s", parsed.Error)
	}
	return strings.TrimSpace(parsed.Text), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
