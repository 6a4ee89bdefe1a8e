// Package records exposes imported records and their deletion hook.
//
// Deleting a record removes its metadata and term links. When the general
// setting delete_imported_images is on, the featured image and every
// attachment referenced from the capsule, gallery and movie metadata keys are
// deleted from storage as well.
//
// # HTTP Endpoints
//
//   - GET /records/:id : record, metadata and terms.
//   - DELETE /records/:id : deletes the record.
package records
