package settings

import (
	"time"

	"gorm.io/datatypes"
)

// Namespaces of the option rows.
const (
	NamespaceMapping = "mapping"
	NamespaceGeneral = "general"
)

// Option is one settings namespace stored as a JSON object.
type Option struct {
	Name      string            `gorm:"column:name;primaryKey;size:64" json:"name"`
	Value     datatypes.JSONMap `gorm:"column:value" json:"value"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TableName overrides the table name.
func (Option) TableName() string {
	return "options"
}

// Models returns every model owned by this package, for migrations.
func Models() []any {
	return []any{&Option{}}
}
