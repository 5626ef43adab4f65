// Package logger provides a structured logging facility based on Zap.
//
// The debug level selects zap's development configuration (ISO8601 timestamps, caller
// info); info, warn and error use the production configuration at that level. Output
// is json or console. Unknown levels or formats are rejected.
//
// WithRayID extracts the request ray id from a Fiber context and attaches it to the
// logger, so every log line of a request can be correlated. ForComparison names a
// logger after one comparison run and tags it with both source labels.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Comparison finished", zap.Int("mismatches", n))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
