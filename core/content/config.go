package content

// Config holds configuration for local record types.
type Config struct {
	// BodylessTypes lists record types that have no body (long-form content) field.
	BodylessTypes []string `mapstructure:"bodyless_types" default:""`
}

// SupportsBody reports whether records of the given type carry a body field.
func (c Config) SupportsBody(recordType string) bool {
	for _, t := range c.BodylessTypes {
		if t == recordType {
			return false
		}
	}
	return true
}
