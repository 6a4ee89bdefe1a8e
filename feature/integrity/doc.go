// Package integrity provides health checks of the importer's infrastructure.
//
// # Checks Provided
//
//   - Storage: the media bucket exists (optionally creates it).
//   - Schema: every table and column of the GORM models exists in the database.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
package integrity
