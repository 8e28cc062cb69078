package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/eshaffer321/orderparser/internal/extractor"
	"github.com/eshaffer321/orderparser/internal/infrastructure/config"
	"github.com/eshaffer321/orderparser/internal/infrastructure/storage"
)

// NewExtractor builds the extractor for the configured provider. Missing
// credentials are not fatal: the extractor is returned unconfigured and
// every Extract call reports ErrMissingAPIKey.
func NewExtractor(cfg *config.Config, logger *slog.Logger) (*extractor.Extractor, error) {
	gen, err := extractor.NewGenerator(cfg.Extraction.Provider, cfg.ExtractionAPIKey(), cfg.Extraction.Model)
	if errors.Is(err, extractor.ErrMissingAPIKey) {
		logger.Warn("no extraction credentials configured; parsing is disabled", "provider", cfg.Extraction.Provider)
		return extractor.New(nil, logger), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", cfg.Extraction.Provider, err)
	}

	logger.Info("extraction provider ready", "provider", gen.Name())
	return extractor.New(gen, logger), nil
}

// NewServerStore opens the JSON history file served by the API.
func NewServerStore(cfg *config.Config, logger *slog.Logger) (storage.Repository, error) {
	return storage.NewFileStore(cfg.Storage.HistoryPath, logger)
}

// NewClientStore opens the store used by CLI commands: the running server
// when reachable, else the local SQLite store. With local set only the
// SQLite store is used.
func NewClientStore(cfg *config.Config, local bool, logger *slog.Logger) (storage.Repository, error) {
	kv, err := storage.NewKVStore(cfg.Storage.KVPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if local || cfg.Server.RemoteURL == "" {
		return kv, nil
	}

	remote := storage.NewRemoteStore(cfg.Server.RemoteURL)
	return storage.NewFallbackStore(remote, kv, storage.DefaultFallbackConfig(), logger), nil
}
