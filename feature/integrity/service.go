package integrity

import (
	"context"
	"errors"

	"uloggd/core/storage"
	"uloggd/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by storage checks when the cache does not use object storage.
var ErrStorageDisabled = errors.New("storage cache backend is not enabled")

// Report combines every check. A failed check carries its error instead of a result.
type Report struct {
	Healthy      bool                 `json:"healthy"`
	Schema       *checks.SchemaReport `json:"schema,omitempty"`
	SchemaError  string               `json:"schema_error,omitempty"`
	Storage      *checks.BucketReport `json:"storage,omitempty"`
	StorageError string               `json:"storage_error,omitempty"`
}

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	models []any
	client storage.Client
	bucket string
	prefix string
	region string
	logger *zap.Logger
}

// NewService creates a new integrity service. models are the tables the schema check
// verifies. A nil client disables the storage check.
func NewService(db *gorm.DB, models []any, client storage.Client, storageCfg storage.Config, prefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		models: models,
		client: client,
		bucket: storageCfg.Bucket,
		prefix: prefix,
		region: storageCfg.Region,
		logger: logger,
	}
}

// CheckSchema compares the live tables with the models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(ctx, s.db, s.models...)
}

// CheckStorage verifies the cache bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckBucket(ctx, s.client, s.bucket, s.prefix)
}

// FixStorage creates the cache bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixBucket(ctx, s.client, s.bucket, s.region, s.logger)
}

// Run executes every check. A disabled storage check does not count against health.
func (s *Service) Run(ctx context.Context) *Report {
	report := &Report{Healthy: true}

	schema, err := s.CheckSchema(ctx)
	if err != nil {
		report.SchemaError = err.Error()
		report.Healthy = false
	} else {
		report.Schema = schema
		report.Healthy = schema.Matched
	}

	bucket, err := s.CheckStorage(ctx)
	switch {
	case errors.Is(err, ErrStorageDisabled):
	case err != nil:
		report.StorageError = err.Error()
		report.Healthy = false
	default:
		report.Storage = bucket
		if !bucket.Exists {
			report.Healthy = false
		}
	}

	return report
}
