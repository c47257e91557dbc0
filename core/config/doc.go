// Package config provides configuration management for the receiving service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, business scope)
//   - Database: remote store connection and local mirror path
//   - Storage: S3/MinIO credentials and the invoice archive bucket
//   - Extraction: invoice recognition endpoint and timeout
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
