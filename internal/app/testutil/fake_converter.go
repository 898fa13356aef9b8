package testutil

import (
	"context"
	"os"
	"sync"

	apperrors "audio2text/internal/app/errors"
)

// FakeConverter is a pipeline.FormatConverter double that "converts" by
// copying bytes, or simulates a missing/broken ffmpeg.
type FakeConverter struct {
	mu sync.Mutex

	Missing  bool  // simulate ffmpeg absent from PATH
	FailWith error // non-nil makes every conversion fail

	Conversions []string // input paths converted, in order
}

func (f *FakeConverter) Available() bool {
	return !f.Missing
}

func (f *FakeConverter) ConvertToWav(ctx context.Context, inputPath, outputPath string) error {
	if f.Missing {
		return apperrors.ErrFFmpegMissing
	}
	if f.FailWith != nil {
		return apperrors.WithCause(apperrors.ErrConversionFailed, f.FailWith)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return err
	}

	f.mu.Lock()
	f.Conversions = append(f.Conversions, inputPath)
	f.mu.Unlock()
	return nil
}
