package catalog

// Config holds configuration for the external catalog API.
type Config struct {
	// BaseURL is the catalog store root; the item-detail endpoint is BaseURL + "/api/appdetails".
	BaseURL string `mapstructure:"base_url" default:"https://store.steampowered.com"`
	// FallbackLanguage is requested once when an item is unavailable in the asked language.
	FallbackLanguage string `mapstructure:"fallback_language" default:"en"`
	// TimeoutSeconds bounds every catalog and image request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// UserAgent is sent with every outbound request.
	UserAgent string `mapstructure:"user_agent" default:"game-importer/1.0"`
}
