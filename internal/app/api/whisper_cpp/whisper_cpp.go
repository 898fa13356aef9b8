// Package whisper_cpp runs transcription through a local whisper.cpp
// binary. The model file is chosen once at construction for the configured
// latency/accuracy trade-off and reused for every item in the process
// lifetime.
package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"audio2text/internal/app/util/files"
)

// LocalTranscriber implements api.Transcriber using a whisper.cpp
// executable and a local model file.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	extraArgs  []string
	logger     *slog.Logger
}

// NewLocalTranscriber creates a local transcriber. extraArgs is a single
// shell-style string of additional whisper.cpp flags.
func NewLocalTranscriber(binaryPath, modelPath, extraArgs string, logger *slog.Logger) (*LocalTranscriber, error) {
	if binaryPath == "" {
		return nil, fmt.Errorf("whisper.cpp binary path is required")
	}
	if modelPath == "" {
		return nil, fmt.Errorf("whisper.cpp model path is required")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("whisper.cpp model not found at %s: %w", modelPath, err)
	}

	var args []string
	if extraArgs != "" {
		parsed, err := shellwords.NewParser().Parse(extraArgs)
		if err != nil {
			return nil, fmt.Errorf("failed to parse whisper.cpp extra args: %w", err)
		}
		args = parsed
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		extraArgs:  args,
		logger:     logger,
	}, nil
}

// Transcript runs whisper.cpp against inputFilePath and returns the text it
// produced.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	if language == "" {
		language = "auto"
	}

	// whisper.cpp writes "<output base>.txt"; keep it beside the input so
	// everything lives in the scratch directory.
	outputBase := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath))

	args := []string{
		"-m", lt.modelPath,
		"-l", language,
		"-otxt",
		"-f", inputFilePath,
		"-of", outputBase,
	}
	args = append(args, lt.extraArgs...)

	lt.logger.Debug("running whisper.cpp",
		"binary", lt.binaryPath,
		"input", inputFilePath,
		"language", language,
	)

	cmd := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper.cpp execution failed: %v, stderr: %s", err, stderr.String())
	}

	outputFile := outputBase + ".txt"
	defer os.Remove(outputFile)

	text, err := files.ReadOutputFile(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read whisper.cpp output: %w", err)
	}
	return text, nil
}
