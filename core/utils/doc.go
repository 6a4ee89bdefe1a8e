// Package utils provides common helpers shared by the importer packages:
// loose type conversion for settings and metadata values, and text/HTML
// sanitizing for content coming from the external catalog.
package utils
