package app

import (
	"log/slog"

	"audio2text/internal/app/api"
	"audio2text/internal/app/api/provider"
	"audio2text/internal/app/audio"
	"audio2text/internal/app/pipeline"
	"audio2text/internal/app/repository"
	"audio2text/internal/app/repository/sqlite"
	"audio2text/internal/app/tempfile"
	"audio2text/internal/config"
)

// provideTempStore roots scratch storage at the configured working directory.
func provideTempStore(cfg config.Config) *tempfile.Store {
	return tempfile.NewStore(cfg.TempDir)
}

// provideTranscriber builds the configured backend, instrumented.
func provideTranscriber(cfg config.Config, store *tempfile.Store, logger *slog.Logger) (api.Transcriber, error) {
	return provider.New(cfg.Provider, store, logger)
}

// provideConverter exposes the real ffmpeg-backed converter.
func provideConverter() pipeline.FormatConverter {
	return audio.NewConverter()
}

// provideHistory opens the history database, or returns nil when history is
// disabled.
func provideHistory(cfg config.Config) (repository.TranscriptionDAO, error) {
	if cfg.HistoryDB == "" {
		return nil, nil
	}
	return sqlite.NewSQLiteDB(cfg.HistoryDB)
}
