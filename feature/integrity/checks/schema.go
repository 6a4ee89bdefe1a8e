package checks

import (
	"fmt"
	"sort"
	"sync"

	"game-importer/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing the models with the live database.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table of the schema check.
type TableReport struct {
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that every model's table and columns exist, using the
// GORM models as the source of truth.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if !db.Migrator().HasTable(s.Table) {
			tbl.Status = "error"
			report.Matched = false
			report.Tables[s.Table] = tbl
			continue
		}
		tbl.Exists = true

		actual, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}
		present := make(map[string]bool, len(actual))
		for _, col := range actual {
			present[col.Field] = true
		}

		for _, name := range s.DBNames {
			if !present[name] {
				tbl.MissingColumns = append(tbl.MissingColumns, name)
			}
		}
		if len(tbl.MissingColumns) > 0 {
			sort.Strings(tbl.MissingColumns)
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}

	return report, nil
}
