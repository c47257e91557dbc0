// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides the cross-cutting concerns that sit between the request and
// the feature handlers:
//
//   - auth: API key validation protecting the receiving-station endpoints.
//   - rayid: generates a unique request id (RayID) for every incoming
//     request, injecting it into the context and response headers so log
//     lines and error reports can be traced back to one scan or commit.
//
// Both are registered globally in the server setup; rayid must run first so
// the logging middleware and handlers see the id.
package middleware
