package api

import "context"

// Transcriber defines a transcription interface for converting audio files
// to text. language is a backend code ("en", "zh", ...); empty means let the
// backend decide.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string, language string) (string, error)
}
