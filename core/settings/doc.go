// Package settings stores option namespaces and decodes the field mapping the
// reconcile engine runs with.
package settings
