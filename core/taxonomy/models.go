package taxonomy

// Term is a classification value inside one taxonomy.
type Term struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"id"`
	Taxonomy string `gorm:"column:taxonomy;size:64;not null;uniqueIndex:idx_term_taxonomy_name" json:"taxonomy"`
	Name     string `gorm:"column:name;size:191;not null;uniqueIndex:idx_term_taxonomy_name" json:"name"`
	Slug     string `gorm:"column:slug;size:191;index" json:"slug"`
}

// TableName overrides the table name.
func (Term) TableName() string {
	return "terms"
}

// RecordTerm associates a term with a record.
type RecordTerm struct {
	RecordID uint `gorm:"column:record_id;primaryKey;autoIncrement:false"`
	TermID   uint `gorm:"column:term_id;primaryKey;autoIncrement:false;index"`
}

// TableName overrides the table name.
func (RecordTerm) TableName() string {
	return "record_terms"
}

// Models returns every model owned by this package, for migrations.
func Models() []any {
	return []any{&Term{}, &RecordTerm{}}
}
