package content

import "time"

// Record statuses.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusPending = "pending"
)

// Statuses lists the predefined record statuses in display order.
var Statuses = []string{StatusPublish, StatusDraft, StatusPending}

// IsValidStatus checks if the status is one of the predefined statuses.
func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ExternalIDKey is the metadata key linking a record to its catalog item.
const ExternalIDKey = "_catalog_app_id"

// Record is a local content entry mirroring one catalog item.
type Record struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Type        string    `gorm:"column:type;size:64;index;not null" json:"type"`
	Title       string    `gorm:"column:title;size:255" json:"title"`
	Body        string    `gorm:"column:body;type:longtext" json:"body"`
	Excerpt     string    `gorm:"column:excerpt;type:text" json:"excerpt"`
	Status      string    `gorm:"column:status;size:20;index" json:"status"`
	ThumbnailID *uint     `gorm:"column:thumbnail_id" json:"thumbnail_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (Record) TableName() string {
	return "records"
}

// Meta is one key/value metadata pair of a record. Structured values are JSON encoded.
type Meta struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"-"`
	RecordID uint   `gorm:"column:record_id;not null;uniqueIndex:idx_record_meta_key" json:"-"`
	Key      string `gorm:"column:meta_key;size:191;not null;uniqueIndex:idx_record_meta_key" json:"key"`
	Value    string `gorm:"column:meta_value;type:longtext" json:"value"`
}

// TableName overrides the table name.
func (Meta) TableName() string {
	return "record_meta"
}

// Models returns every model owned by this package, for migrations.
func Models() []any {
	return []any{&Record{}, &Meta{}}
}
