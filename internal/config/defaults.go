package config

const (
	// DefaultBaseURL is the deployed book-processing API root.
	DefaultBaseURL = "https://ebookapi-1xjq.onrender.com/api/v1"

	// DefaultTimeoutSeconds bounds each API request.
	DefaultTimeoutSeconds = 30

	// DefaultPageSize is the page size used for list endpoints.
	DefaultPageSize = 20

	// DefaultReadingSpeedWPM is the assumed reading speed for local
	// reading time estimates.
	DefaultReadingSpeedWPM = 200
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Defaults: DefaultsConfig{
			PageSize:        DefaultPageSize,
			ReadingSpeedWPM: DefaultReadingSpeedWPM,
		},
	}
}
