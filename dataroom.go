// Package dataroom assembles the data room storage/service layer: a
// hierarchical folder/file tree persisted as one serialized document, a
// content-addressed blob store for payloads, and the service that owns all
// tree queries and mutations.
package dataroom

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"dataroom/internal/config"
	"dataroom/internal/domain/repositories"
	roomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/filetype"
	"dataroom/internal/repository/localdisk"
	"dataroom/internal/repository/memory"
	"dataroom/internal/repository/postgres"
	service "dataroom/internal/service/dataroom"
)

// NewLogger builds the structured logger the service logs through: debug
// level when cfg.Debug is set, and duplicated into a rotated log file when
// cfg.LogDir is set. The returned cleanup func closes the log file and is
// always non-nil.
func NewLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, 5)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stderr, f)
		cleanup = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), cleanup, nil
}

// New builds a Service wired to the storage backend named in cfg. The
// returned cleanup func releases backend resources and is always non-nil.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (roomSvc.Service, func(), error) {
	types, err := filetype.NewRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("load file type registry: %w", err)
	}

	var (
		docStore  repositories.DocumentStore
		blobStore repositories.BlobStore
		cleanup   = func() {}
	)

	switch cfg.Storage {
	case config.StorageMemory:
		docStore = memory.NewDocumentStore()
		blobStore = memory.NewBlobStore()

	case config.StoragePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, nil, err
		}
		repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables}
		docStore = postgres.NewDocumentStore(repoConfig)
		blobStore = postgres.NewBlobStore(repoConfig)
		cleanup = pool.Close

	case config.StorageLocalDisk:
		docStore, err = localdisk.NewDocumentStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		blobStore, err = localdisk.NewBlobStore(filepath.Join(cfg.DataDir, "blobs"))
		if err != nil {
			return nil, nil, err
		}

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	return service.NewService(docStore, blobStore, types, logger), cleanup, nil
}
