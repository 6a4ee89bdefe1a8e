package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resolver ensures terms exist and attaches them to records.
type Resolver struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewResolver creates a new term resolver.
func NewResolver(db *gorm.DB, logger *zap.Logger) *Resolver {
	return &Resolver{db: db, logger: logger}
}

// EnsureTerms looks up each name in the taxonomy, creates the missing ones and
// attaches all of them to the record. Existing associations are kept. A failure
// on one name does not stop the others; all failures are returned joined.
func (r *Resolver) EnsureTerms(ctx context.Context, recordID uint, taxonomy string, names []string) error {
	if taxonomy == "" || len(names) == 0 {
		return nil
	}

	var errs []error
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		term, err := r.findOrCreate(ctx, taxonomy, name)
		if err != nil {
			r.logger.Warn("Failed to resolve term",
				zap.String("taxonomy", taxonomy),
				zap.String("term", name),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}

		if err := r.attach(ctx, recordID, term.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TermsOf returns the terms attached to a record, grouped by taxonomy.
func (r *Resolver) TermsOf(ctx context.Context, recordID uint) (map[string][]string, error) {
	var terms []Term
	err := r.db.WithContext(ctx).
		Joins("JOIN record_terms ON record_terms.term_id = terms.id").
		Where("record_terms.record_id = ?", recordID).
		Order("terms.taxonomy, terms.name").
		Find(&terms).Error
	if err != nil {
		return nil, fmt.Errorf("list terms of record %d: %w", recordID, err)
	}

	out := make(map[string][]string)
	for _, t := range terms {
		out[t.Taxonomy] = append(out[t.Taxonomy], t.Name)
	}
	return out, nil
}

// Detach removes every term association of a record. Terms themselves are kept.
func (r *Resolver) Detach(ctx context.Context, recordID uint) error {
	if err := r.db.WithContext(ctx).Where("record_id = ?", recordID).Delete(&RecordTerm{}).Error; err != nil {
		return fmt.Errorf("detach terms of record %d: %w", recordID, err)
	}
	return nil
}

func (r *Resolver) findOrCreate(ctx context.Context, taxonomy, name string) (*Term, error) {
	var term Term
	err := r.db.WithContext(ctx).Where("taxonomy = ? AND name = ?", taxonomy, name).First(&term).Error
	if err == nil {
		return &term, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup term %q in %s: %w", name, taxonomy, err)
	}

	term = Term{Taxonomy: taxonomy, Name: name, Slug: slug.Make(name)}
	if err := r.db.WithContext(ctx).Create(&term).Error; err != nil {
		return nil, fmt.Errorf("create term %q in %s: %w", name, taxonomy, err)
	}
	return &term, nil
}

func (r *Resolver) attach(ctx context.Context, recordID, termID uint) error {
	link := RecordTerm{RecordID: recordID, TermID: termID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return fmt.Errorf("attach term %d to record %d: %w", termID, recordID, err)
	}
	return nil
}
