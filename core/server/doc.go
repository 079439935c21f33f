// Package server holds the HTTP server configuration and constants.
//
// The start command builds the Fiber application from this configuration: listen port,
// request body limit (which also bounds batch resolution payloads) and read/write timeouts.
// The environment value decides whether Swagger documentation is mounted.
package server
