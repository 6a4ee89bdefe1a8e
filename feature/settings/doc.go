// Package settings exposes the option namespaces over HTTP.
//
//   - GET /settings/:namespace
//   - PUT /settings/:namespace : merges a JSON object into the namespace.
package settings
