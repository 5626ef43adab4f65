// Package server holds the HTTP server configuration.
//
// The cmd start command builds the Fiber application from this configuration: the
// listen port, the request body limit (comparison uploads can be large) and the API key
// protecting every non-documentation route.
package server
