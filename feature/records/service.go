package records

import (
	"context"
	"errors"
	"fmt"

	"game-importer/core/content"
	"game-importer/core/media"
	"game-importer/core/settings"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the record does not exist.
var ErrNotFound = content.ErrNotFound

// RecordStore reads and deletes records.
type RecordStore interface {
	Get(ctx context.Context, id uint) (*content.Record, error)
	AllMeta(ctx context.Context, id uint) ([]content.Meta, error)
	Delete(ctx context.Context, id uint) error
}

// TermStore reads and detaches record terms.
type TermStore interface {
	TermsOf(ctx context.Context, recordID uint) (map[string][]string, error)
	Detach(ctx context.Context, recordID uint) error
}

// SettingsSource loads the settings the deletion hook depends on.
type SettingsSource interface {
	LoadMapping(ctx context.Context) (settings.Mapping, error)
	LoadGeneral(ctx context.Context) (settings.General, error)
}

// MediaDeleter removes attachments.
type MediaDeleter interface {
	Delete(ctx context.Context, id uint) error
}

// Detail is a record with its metadata and terms.
type Detail struct {
	Record *content.Record     `json:"record"`
	Meta   map[string]string   `json:"meta"`
	Terms  map[string][]string `json:"terms"`
}

// DeleteResult reports what a deletion removed.
type DeleteResult struct {
	RecordID     uint   `json:"record_id"`
	DeletedMedia []uint `json:"deleted_media"`
	FailedMedia  []uint `json:"failed_media,omitempty"`
}

// Service reads and deletes imported records.
type Service struct {
	records  RecordStore
	terms    TermStore
	settings SettingsSource
	media    MediaDeleter
	logger   *zap.Logger
}

// NewService creates a new records service.
func NewService(records RecordStore, terms TermStore, cfg SettingsSource, deleter MediaDeleter, logger *zap.Logger) *Service {
	return &Service{
		records:  records,
		terms:    terms,
		settings: cfg,
		media:    deleter,
		logger:   logger,
	}
}

// Get returns the record with its metadata and terms.
func (s *Service) Get(ctx context.Context, id uint) (*Detail, error) {
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	meta, err := s.metaMap(ctx, id)
	if err != nil {
		return nil, err
	}
	terms, err := s.terms.TermsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Record: rec, Meta: meta, Terms: terms}, nil
}

// Delete removes a record. When delete_imported_images is enabled and the
// record has the mapped record type, its imported media is removed first.
func (s *Service) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{RecordID: id, DeletedMedia: []uint{}}
	if err := s.cleanMedia(ctx, rec, result); err != nil {
		return nil, err
	}

	if err := s.terms.Detach(ctx, id); err != nil {
		return nil, err
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) cleanMedia(ctx context.Context, rec *content.Record, result *DeleteResult) error {
	general, err := s.settings.LoadGeneral(ctx)
	if err != nil {
		return fmt.Errorf("failed to load general settings: %w", err)
	}
	if !general.DeleteImportedImages {
		return nil
	}

	mapping, err := s.settings.LoadMapping(ctx)
	if err != nil {
		return fmt.Errorf("failed to load mapping: %w", err)
	}
	if mapping.RecordType != rec.Type {
		return nil
	}

	meta, err := s.metaMap(ctx, rec.ID)
	if err != nil {
		return err
	}

	for _, mediaID := range CollectMediaIDs(rec, meta, mapping.CapsuleMeta, mapping.GalleryMeta, mapping.MovieMeta) {
		if err := s.media.Delete(ctx, mediaID); err != nil && !errors.Is(err, media.ErrNotFound) {
			s.logger.Warn("Failed to delete imported media", zap.Uint("record_id", rec.ID), zap.Uint("attachment_id", mediaID), zap.Error(err))
			result.FailedMedia = append(result.FailedMedia, mediaID)
			continue
		}
		result.DeletedMedia = append(result.DeletedMedia, mediaID)
	}
	return nil
}

func (s *Service) metaMap(ctx context.Context, id uint) (map[string]string, error) {
	metas, err := s.records.AllMeta(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(metas))
	for _, m := range metas {
		out[m.Key] = m.Value
	}
	return out, nil
}
