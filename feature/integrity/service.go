package integrity

import (
	"context"
	"fmt"

	"report-compare/core/reconcile"
	"report-compare/core/storage"
	"report-compare/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	cfg    reconcile.Config
}

// NewService creates a new integrity service. db may be nil when no database is configured.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg reconcile.Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		cfg:    cfg,
	}
}

// RequiredFolders returns the folders the bucket must hold: the inputs and results prefixes.
func (s *Service) RequiredFolders() []string {
	return []string{s.cfg.InputsPrefix, s.cfg.ResultsPrefix}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.RequiredFolders())
}

// EnsureBucket creates the bucket when it is missing and reports whether it did.
func (s *Service) EnsureBucket(ctx context.Context) (bool, error) {
	created, err := storage.EnsureBucket(ctx, s.client, s.bucket, "")
	if created {
		s.logger.Info("Created missing bucket", zap.String("bucket", s.bucket))
	}
	return created, err
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckInputs reports which input objects can be compared.
func (s *Service) CheckInputs(ctx context.Context) (*checks.InputsReport, error) {
	return checks.CheckInputs(ctx, s.client, s.bucket, s.cfg.InputsPrefix)
}

// CheckTables verifies that tables exist and carry the key column. An empty key uses
// the configured default.
func (s *Service) CheckTables(ctx context.Context, tables []string, key string) (*checks.TablesReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is not configured")
	}
	if key == "" {
		key = s.cfg.Key
	}
	return checks.CheckTables(ctx, s.db, tables, key)
}
