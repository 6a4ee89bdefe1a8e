package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownNamespace is returned for namespaces the store does not manage.
var ErrUnknownNamespace = errors.New("unknown settings namespace")

// Store persists settings namespaces.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new settings store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// IsKnownNamespace reports whether ns is a managed namespace.
func IsKnownNamespace(ns string) bool {
	return ns == NamespaceMapping || ns == NamespaceGeneral
}

// Load returns the raw values of a namespace. A namespace never saved yields
// an empty map.
func (s *Store) Load(ctx context.Context, ns string) (map[string]any, error) {
	if !IsKnownNamespace(ns) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNamespace, ns)
	}

	var opt Option
	err := s.db.WithContext(ctx).Where("name = ?", ns).Take(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", ns, err)
	}
	if opt.Value == nil {
		return map[string]any{}, nil
	}
	return map[string]any(opt.Value), nil
}

// Save merges values into the stored namespace.
func (s *Store) Save(ctx context.Context, ns string, values map[string]any) (map[string]any, error) {
	current, err := s.Load(ctx, ns)
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		current[k] = v
	}

	opt := Option{Name: ns, Value: datatypes.JSONMap(current)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&opt).Error
	if err != nil {
		return nil, fmt.Errorf("save settings %s: %w", ns, err)
	}
	return current, nil
}

// LoadMapping loads and decodes the field-mapping namespace.
func (s *Store) LoadMapping(ctx context.Context) (Mapping, error) {
	raw, err := s.Load(ctx, NamespaceMapping)
	if err != nil {
		return Mapping{}, err
	}
	return DecodeMapping(raw)
}

// LoadGeneral loads and decodes the general namespace.
func (s *Store) LoadGeneral(ctx context.Context) (General, error) {
	raw, err := s.Load(ctx, NamespaceGeneral)
	if err != nil {
		return General{}, err
	}
	return DecodeGeneral(raw)
}
