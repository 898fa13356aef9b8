// Package audio wraps the external ffmpeg/ffprobe binaries for format
// conversion and duration probing, and provides native WAV splitting for
// backends that cap request duration.
package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
)

// Converter invokes ffmpeg to transform compressed audio containers into
// uncompressed WAV suitable for the transcription backends. It is stateless;
// the lookPath hook exists for tests.
type Converter struct {
	lookPath func(string) (string, error)
	runner   func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)
}

// NewConverter creates a converter using the real ffmpeg on PATH.
func NewConverter() *Converter {
	return &Converter{
		lookPath: exec.LookPath,
		runner:   runCommand,
	}
}

// Available reports whether ffmpeg is discoverable on PATH.
func (c *Converter) Available() bool {
	_, err := c.lookPath("ffmpeg")
	return err == nil
}

// ConvertToWav transforms inputPath into a 16 kHz mono PCM WAV at
// outputPath. Returns ErrFFmpegMissing when the binary is absent and
// ErrConversionFailed (with ffmpeg's stderr) when the transform fails.
func (c *Converter) ConvertToWav(ctx context.Context, inputPath, outputPath string) error {
	if !c.Available() {
		return apperrors.ErrFFmpegMissing
	}

	args := []string{
		"-y", "-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		outputPath,
	}
	_, stderr, err := c.runner(ctx, "ffmpeg", args...)
	if err != nil {
		return apperrors.WithCause(apperrors.ErrConversionFailed,
			apperrors.Newf("ffmpeg: %v, stderr: %s", err, truncate(string(stderr), 512)))
	}
	return nil
}

// Duration returns the audio duration in seconds as reported by ffprobe.
func (c *Converter) Duration(ctx context.Context, path string) (float64, error) {
	if _, err := c.lookPath("ffprobe"); err != nil {
		return 0, apperrors.ErrFFmpegMissing
	}

	stdout, _, err := c.runner(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		path,
	)
	if err != nil {
		return 0, apperrors.Wrapf(err, "ffprobe failed for %s", path)
	}

	var probe model.FFProbeFormat
	if err := json.Unmarshal(stdout, &probe); err != nil {
		return 0, apperrors.Wrap(err, "failed to parse ffprobe output")
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, apperrors.Wrap(err, "ffprobe reported no duration")
	}
	return duration, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
