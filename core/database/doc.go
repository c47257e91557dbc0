// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure connections based on the application's configuration. Two drivers
// are supported:
//
//   - mysql: the remote store holding the inventory catalog and supplier orders.
//   - sqlite: the local embedded mirror used for offline catalog reads and for
//     tests (":memory:").
//
// # Connect
//
// The generic Connect function establishes a connection for either driver. The
// remote connection is optional at startup; callers should handle the error
// gracefully and fall back to mirror reads.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Remote store unreachable, reads will use the local mirror")
//	}
package database
