// Package importer is the inbound trigger of a catalog import.
//
// It accepts a catalog id or store URL plus a language, validates the id and
// runs the reconcile engine with the stored field mapping.
//
// # HTTP Endpoints
//
//   - POST /import : imports one item (external_id, language).
package importer
