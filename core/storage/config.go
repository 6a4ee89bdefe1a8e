package storage

import "strings"

// Config holds configuration for the media storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket imported media is stored in.
	Bucket string `mapstructure:"bucket" default:"media"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// PublicURL is the base URL objects are served from. Defaults to endpoint/bucket.
	PublicURL string `mapstructure:"public_url" default:""`
	// MaxUploadBytes caps the size of a single downloaded media file.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" default:"20971520"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// ObjectURL returns the public URL of an object key in the configured bucket.
func (c Config) ObjectURL(key string) string {
	base := strings.TrimRight(c.PublicURL, "/")
	if base == "" {
		scheme := "http://"
		if c.UseSSL {
			scheme = "https://"
		}
		endpoint := strings.TrimPrefix(strings.TrimPrefix(c.Endpoint, "http://"), "https://")
		base = scheme + strings.TrimRight(endpoint, "/") + "/" + c.Bucket
	}
	return base + "/" + strings.TrimLeft(key, "/")
}
