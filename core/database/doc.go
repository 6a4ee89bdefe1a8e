// Package database handles database connections and schema management.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the pool, applies pool limits and verifies the connection with a
// ping bounded by the configured timeout.
//
// # Schema
//
// Migrate runs AutoMigrate for the record, metadata, attachment, term and option
// models. GetTableColumns reports the resulting columns, which the migrate command
// prints after a run.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "records")
package database
