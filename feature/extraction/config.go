package extraction

import "time"

// Config holds configuration for the invoice recognition service.
type Config struct {
	// Endpoint is the URL of the recognition service.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:8090/v1/invoice"`
	// ApiKey authenticates against the recognition service.
	ApiKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds the recognition call. Extractions have been
	// observed to take close to a minute on dense invoices.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}

// Timeout returns the configured timeout as a duration, defaulting to 60s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
