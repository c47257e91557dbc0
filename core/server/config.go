package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BusinessID identifies the business this instance serves.
	// All catalog and order rows are scoped to it.
	BusinessID string `mapstructure:"business_id" default:""`
	// DeviceName labels this device in audit fields when no
	// explicit counted_by is provided.
	DeviceName string `mapstructure:"device_name" default:"receiving-station"`
}

// HasAuth reports whether API key protection is enabled.
func (c Config) HasAuth() bool {
	return c.ApiKey != ""
}
