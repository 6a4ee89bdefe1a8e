package importer

import (
	"context"
	"fmt"
	"strings"

	"game-importer/core/reconcile"
	"game-importer/core/settings"

	"go.uber.org/zap"
)

// DefaultLanguage is used when the request names no language.
const DefaultLanguage = "en"

// MappingSource loads the field mapping for one import.
type MappingSource interface {
	LoadMapping(ctx context.Context) (settings.Mapping, error)
}

// Reconciler runs one reconciliation.
type Reconciler interface {
	Reconcile(ctx context.Context, mapping settings.Mapping, externalID, language string) reconcile.Outcome
}

// Service validates import requests and hands them to the engine.
type Service struct {
	mappings MappingSource
	engine   Reconciler
	logger   *zap.Logger
}

// NewService creates a new import service.
func NewService(mappings MappingSource, engine Reconciler, logger *zap.Logger) *Service {
	return &Service{mappings: mappings, engine: engine, logger: logger}
}

// Import extracts the catalog id from rawID and reconciles it. Validation and
// reconcile failures are returned as *Error.
func (s *Service) Import(ctx context.Context, rawID, language string) (reconcile.Outcome, error) {
	if strings.TrimSpace(rawID) == "" {
		return reconcile.Outcome{}, &Error{Code: CodeMissingAppID}
	}
	id := ExtractAppID(rawID)
	if id == "" {
		return reconcile.Outcome{}, &Error{Code: CodeInvalidAppID}
	}

	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}

	mapping, err := s.mappings.LoadMapping(ctx)
	if err != nil {
		return reconcile.Outcome{}, fmt.Errorf("failed to load mapping: %w", err)
	}

	out := s.engine.Reconcile(ctx, mapping, id, language)
	if !out.Success {
		return out, &Error{Code: CodeFetchFailed, Message: out.Error}
	}
	return out, nil
}
