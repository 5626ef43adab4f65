// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: a unique request id stored in the context and echoed in X-Ray-ID.
package middleware
