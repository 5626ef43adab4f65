// Package config provides configuration management for report-compare.
//
// Values come from environment variables, optionally seeded from a .env file, then an
// optional config file (config.yaml, config.json or any format viper reads) in the
// same directory, with defaults declared on the struct fields through `default` tags.
// LoadConfig validates the result and fails with ErrInvalidConfig.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, request body limit
//   - Storage: S3/MinIO credentials and the bucket holding inputs and results
//   - Log: logging level and format
//   - Database: connection used by table comparisons (mysql or sqlite)
//   - Compare: default key column, sheet, storage prefixes, value normalization, cache TTL
//
// Nested keys map to environment variables by replacing dots with underscores, e.g.
// compare.key is read from COMPARE_KEY.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compare.Key)
package config
