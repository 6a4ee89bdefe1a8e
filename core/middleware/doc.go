// Package middleware groups the HTTP middleware of the server.
//
//   - auth: API key check on every protected route.
//   - rayid: per-request id stored in locals and echoed in the X-Ray-ID header.
package middleware
