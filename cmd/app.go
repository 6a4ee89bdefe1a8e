package cmd

import (
	"fmt"

	"game-importer/core/catalog"
	"game-importer/core/config"
	"game-importer/core/content"
	"game-importer/core/database"
	"game-importer/core/logger"
	"game-importer/core/media"
	"game-importer/core/reconcile"
	"game-importer/core/settings"
	"game-importer/core/storage"
	"game-importer/core/taxonomy"
	"game-importer/feature/importer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the components every command builds from the configuration.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	store    storage.Client
	records  *content.Repository
	terms    *taxonomy.Resolver
	media    *media.Resolver
	settings *settings.Store
	engine   *reconcile.Engine
}

// allModels lists every persisted model.
func allModels() []any {
	var models []any
	models = append(models, content.Models()...)
	models = append(models, taxonomy.Models()...)
	models = append(models, media.Models()...)
	models = append(models, settings.Models()...)
	return models
}

// newApp loads the configuration and wires the components. Storage is only
// connected when withStorage is set.
func newApp(withStorage bool) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
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

	a := &app{
		cfg:      cfg,
		logger:   logg,
		db:       db,
		records:  content.NewRepository(db),
		terms:    taxonomy.NewResolver(db, logg),
		settings: settings.NewStore(db),
	}
	if !withStorage {
		return a, nil
	}

	a.store, err = storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	a.media = media.NewResolver(db, a.store, cfg.Storage, catalog.NewHTTPClient(cfg.Catalog), cfg.Catalog.UserAgent, logg)
	a.engine = reconcile.NewEngine(a.records, cfg.Content, catalog.NewClient(cfg.Catalog, logg), a.media, a.terms, logg)
	a.engine.Subscribe(importer.NewLogObserver(logg))
	return a, nil
}
