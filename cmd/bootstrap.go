package cmd

import (
	"context"
	"fmt"
	"time"

	"uloggd/core/cache"
	"uloggd/core/catalog"
	"uloggd/core/config"
	"uloggd/core/database"
	"uloggd/core/logger"
	"uloggd/core/shortid"
	"uloggd/core/storage"
	"uloggd/feature/games"
	"uloggd/feature/library"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the collaborators shared by the server and the CLI commands.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	storage  storage.Client // nil unless the storage cache backend is selected
	store    *cache.Store
	catalog  *catalog.Client
	backfill *games.Backfiller
	codec    *shortid.Codec
}

// schemaModels lists every table owned by the service.
func schemaModels() []any {
	return append([]any{&cache.Entry{}}, library.Models()...)
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(schemaModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		logg.Info("Schema migrated")
	}

	rt := &runtime{cfg: cfg, logger: logg, db: db, codec: shortid.New(cfg.ShortID.Mode())}

	var backend cache.Backend
	switch cfg.Cache.Backend {
	case cache.BackendDatabase:
		backend = cache.NewDatabaseBackend(db)
	case cache.BackendStorage:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		rt.storage = client
		backend = cache.NewStorageBackend(client, cfg.Storage.Bucket, cfg.Cache.StoragePrefix)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
	logg.Debug("Cache backend selected", zap.String("backend", cfg.Cache.Backend))

	rt.store = cache.NewStore(backend, cfg.Cache, logg)
	rt.catalog = catalog.NewClient(cfg.Catalog, catalog.NewCredentialsProvider(ctx, cfg.Catalog), logg)
	rt.backfill = games.NewBackfiller(rt.store, games.BackfillTTL,
		time.Duration(cfg.Catalog.BackfillTimeoutSeconds)*time.Second, logg)

	return rt, nil
}

// Close drains pending backfill writes and releases the database.
func (r *runtime) Close() {
	r.backfill.Close()
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = r.logger.Sync()
}
