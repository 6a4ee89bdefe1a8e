package media

import "time"

// Attachment is an imported media object stored in the bucket.
type Attachment struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	FilePath  string    `gorm:"column:file_path;size:255;not null;index" json:"file_path"`
	URL       string    `gorm:"column:url;size:512" json:"url"`
	MimeType  string    `gorm:"column:mime_type;size:100" json:"mime_type"`
	Title     string    `gorm:"column:title;size:255" json:"title"`
	Size      int64     `gorm:"column:size" json:"size"`
	SourceURL string    `gorm:"column:source_url;size:512" json:"source_url"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name.
func (Attachment) TableName() string {
	return "attachments"
}

// Ref is the {id, url} reference stored in record metadata.
type Ref struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// Ref returns the metadata reference of the attachment.
func (a *Attachment) Ref() Ref {
	return Ref{ID: a.ID, URL: a.URL}
}

// Models returns every model owned by this package, for migrations.
func Models() []any {
	return []any{&Attachment{}}
}
