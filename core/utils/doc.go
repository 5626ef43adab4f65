// Package utils converts database values to cell text (ToString), reads loosely typed
// flags (ToBool) and normalizes cell values for whitespace and case insensitive
// comparisons (Normalize).
package utils
