package integrity

import (
	"context"

	"game-importer/core/storage"
	"game-importer/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	cfg    storage.Config
	db     *gorm.DB
	models []any
	logger *zap.Logger
}

// NewService creates a new integrity service checking the given models.
func NewService(client storage.Client, cfg storage.Config, db *gorm.DB, models []any, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		db:     db,
		models: models,
		logger: logger,
	}
}

// CheckStorage checks the media bucket and creates it when fix is set.
func (s *Service) CheckStorage(ctx context.Context, fix bool) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.cfg.Bucket, s.cfg.Region, fix)
}

// CheckSchema compares the models with the database.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.models...)
}
