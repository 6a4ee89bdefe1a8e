package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository persists records and their metadata.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new record repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByExternalID returns the record of the given type tagged with externalID,
// regardless of its status. It returns nil without error when none exists.
func (r *Repository) FindByExternalID(ctx context.Context, recordType, externalID string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Joins("JOIN record_meta ON record_meta.record_id = records.id").
		Where("records.type = ? AND record_meta.meta_key = ? AND record_meta.meta_value = ?", recordType, ExternalIDKey, externalID).
		Order("records.id").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find record by external id %s: %w", externalID, err)
	}
	return &rec, nil
}

// Get loads a record by id.
func (r *Repository) Get(ctx context.Context, id uint) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	return &rec, nil
}

// Create inserts a new record and fills its id.
func (r *Repository) Create(ctx context.Context, rec *Record) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// Update writes the given columns of a record. Zero values are written too.
func (r *Repository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&Record{ID: id}).Updates(fields).Error; err != nil {
		return fmt.Errorf("update record %d: %w", id, err)
	}
	return nil
}

// SetMeta inserts or replaces one metadata value.
func (r *Repository) SetMeta(ctx context.Context, id uint, key, value string) error {
	m := Meta{RecordID: id, Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("set meta %s on record %d: %w", key, id, err)
	}
	return nil
}

// SetMetaJSON stores v JSON encoded.
func (r *Repository) SetMetaJSON(ctx context.Context, id uint, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode meta %s: %w", key, err)
	}
	return r.SetMeta(ctx, id, key, string(raw))
}

// GetMeta returns one metadata value and whether it exists.
func (r *Repository) GetMeta(ctx context.Context, id uint, key string) (string, bool, error) {
	var m Meta
	err := r.db.WithContext(ctx).Where("record_id = ? AND meta_key = ?", id, key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get meta %s on record %d: %w", key, id, err)
	}
	return m.Value, true, nil
}

// AllMeta returns every metadata pair of a record ordered by key.
func (r *Repository) AllMeta(ctx context.Context, id uint) ([]Meta, error) {
	var metas []Meta
	if err := r.db.WithContext(ctx).Where("record_id = ?", id).Order("meta_key").Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("list meta of record %d: %w", id, err)
	}
	return metas, nil
}

// Delete removes a record and its metadata.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("record_id = ?", id).Delete(&Meta{}).Error; err != nil {
			return fmt.Errorf("delete meta of record %d: %w", id, err)
		}
		res := tx.Delete(&Record{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete record %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
