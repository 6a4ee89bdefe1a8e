package settings

import (
	"context"
	"errors"
	"fmt"

	core "game-importer/core/settings"

	"go.uber.org/zap"
)

// ErrInvalid wraps values rejected by validation.
var ErrInvalid = errors.New("invalid settings")

// Store loads and saves settings namespaces.
type Store interface {
	Load(ctx context.Context, ns string) (map[string]any, error)
	Save(ctx context.Context, ns string, values map[string]any) (map[string]any, error)
}

// Service reads and updates settings namespaces.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new settings service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the stored values of a namespace.
func (s *Service) Get(ctx context.Context, ns string) (map[string]any, error) {
	return s.store.Load(ctx, ns)
}

// Update merges values into a namespace after validating the merged result.
func (s *Service) Update(ctx context.Context, ns string, values map[string]any) (map[string]any, error) {
	current, err := s.store.Load(ctx, ns)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]any, len(current)+len(values))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}

	if err := validate(ns, merged); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s.store.Save(ctx, ns, values)
}

func validate(ns string, values map[string]any) error {
	switch ns {
	case core.NamespaceMapping:
		m, err := core.DecodeMapping(values)
		if err != nil {
			return err
		}
		return m.Validate()
	case core.NamespaceGeneral:
		_, err := core.DecodeGeneral(values)
		return err
	}
	return nil
}
