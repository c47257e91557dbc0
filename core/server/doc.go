// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings: the listen port, the
// API key protecting the endpoints, the business scope, and the device name used
// in audit fields.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by feature packages that need the business scope or device name.
package server
