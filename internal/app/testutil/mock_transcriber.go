// Package testutil provides shared test doubles.
package testutil

import (
	"context"
	"strings"
	"sync"
)

// TranscriptionCall records one invocation of the mock.
type TranscriptionCall struct {
	InputFilePath string
	Language      string
}

// MockTranscriber is a configurable api.Transcriber double. Responses and
// errors can be keyed by the display name fragment contained in the scratch
// path, falling back to the defaults.
type MockTranscriber struct {
	mu sync.Mutex

	DefaultResponse string
	DefaultError    error

	// ResponseFor / ErrorFor match when the key is a substring of the
	// input path.
	ResponseFor map[string]string
	ErrorFor    map[string]error

	Calls []TranscriptionCall
}

// NewMockTranscriber creates a mock that returns a fixed transcript.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "this is a mock transcription result",
		ResponseFor:     make(map[string]string),
		ErrorFor:        make(map[string]error),
	}
}

// Transcript implements api.Transcriber.
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, TranscriptionCall{InputFilePath: inputFilePath, Language: language})
	m.mu.Unlock()

	for key, err := range m.ErrorFor {
		if key != "" && strings.Contains(inputFilePath, key) {
			return "", err
		}
	}
	for key, text := range m.ResponseFor {
		if key != "" && strings.Contains(inputFilePath, key) {
			return text, nil
		}
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	return m.DefaultResponse, nil
}

// CallCount returns how many times Transcript ran.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
