package reconcile

import (
	"context"
	"errors"

	"game-importer/core/content"
	"game-importer/core/media"
)

// ErrNoRecordType is returned when the mapping does not select a record type.
var ErrNoRecordType = errors.New("no record type selected")

// Outcome is the result of one reconciliation.
type Outcome struct {
	// Success is false when the run stopped before mapping any field.
	Success bool `json:"success"`

	// RecordID is the local record the external item maps to. It is also set
	// on a failed fetch, pointing at the stub that was located or created.
	RecordID uint `json:"record_id,omitempty"`

	// Created is true when the record did not exist before this run.
	Created bool `json:"created"`

	// Error is the human readable failure message.
	Error string `json:"error,omitempty"`
}

// EventKind names a reconciliation milestone.
type EventKind string

const (
	EventRecordLocated     EventKind = "record_located"
	EventRecordCreated     EventKind = "record_created"
	EventCoreContentMapped EventKind = "core_content_mapped"
	EventTaxonomiesMapped  EventKind = "taxonomies_mapped"
	EventImagesMapped      EventKind = "images_mapped"
	EventMetadataMapped    EventKind = "metadata_mapped"
	EventFinished          EventKind = "reconcile_finished"
)

// Event is delivered to observers after each milestone.
type Event struct {
	Kind       EventKind
	RecordID   uint
	ExternalID string
}

// Observer receives engine events. Observers run synchronously, in
// registration order, and cannot influence the run.
type Observer interface {
	OnEvent(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

// OnEvent calls f.
func (f ObserverFunc) OnEvent(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// RecordStore persists local records and their metadata.
type RecordStore interface {
	FindByExternalID(ctx context.Context, recordType, externalID string) (*content.Record, error)
	Create(ctx context.Context, rec *content.Record) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	SetMeta(ctx context.Context, id uint, key, value string) error
	SetMetaJSON(ctx context.Context, id uint, key string, v any) error
}

// MediaResolver imports remote images.
type MediaResolver interface {
	ResolveImage(ctx context.Context, url, ownerName, role string) (*media.Attachment, error)
	ResolveGallery(ctx context.Context, urls []string, ownerName string) []media.Ref
}

// TermResolver attaches taxonomy terms to records.
type TermResolver interface {
	EnsureTerms(ctx context.Context, recordID uint, taxonomy string, names []string) error
}
