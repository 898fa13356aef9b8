//go:build wireinject
// +build wireinject

package app

import (
	"log/slog"

	"github.com/google/wire"

	"audio2text/internal/app/pipeline"
	"audio2text/internal/app/repository"
	"audio2text/internal/config"
)

// InitializePipeline assembles the batch pipeline for the configured
// provider. history may be nil to disable persisted history.
func InitializePipeline(cfg config.Config, history repository.TranscriptionDAO, logger *slog.Logger) (*pipeline.Pipeline, error) {
	wire.Build(
		pipeline.New,
		provideTempStore,
		provideTranscriber,
		provideConverter,
	)
	return nil, nil
}

// InitializeHistory opens the history store, or returns nil when history is
// disabled. Callers share the handle between the pipeline's writes and the
// history endpoint's reads.
func InitializeHistory(cfg config.Config) (repository.TranscriptionDAO, error) {
	wire.Build(provideHistory)
	return nil, nil
}
