// Package config provides configuration management for the game importer.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each partial configuration as
// `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all process settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials, bucket and public URL for imported media
//   - Log: Logging level and format
//   - Catalog: base URL, fallback language and timeouts of the catalog API
//   - Content: record types that do not carry a body
//
// The field-mapping configuration chosen by the site owner is not part of this
// package; it lives in the database and is loaded through core/settings.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Catalog.BaseURL)
package config
