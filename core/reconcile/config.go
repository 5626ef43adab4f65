package reconcile

import "time"

// Config holds the comparison defaults.
type Config struct {
	// Key is the default key column.
	Key string `mapstructure:"key" default:"id"`
	// Sheet selects the worksheet of spreadsheet sources; empty means the first sheet.
	Sheet string `mapstructure:"sheet" default:""`
	// InputsPrefix is the storage prefix holding source files.
	InputsPrefix string `mapstructure:"inputs_prefix" default:"inputs"`
	// ResultsPrefix is the storage prefix where result workbooks are written.
	ResultsPrefix string `mapstructure:"results_prefix" default:"results"`
	// TrimSpaces collapses whitespace in values before they are compared.
	TrimSpaces bool `mapstructure:"trim_spaces" default:"false"`
	// CaseInsensitive compares values without regard to case.
	CaseInsensitive bool `mapstructure:"case_insensitive" default:"false"`
	// CacheTTLSeconds is how long finished reports are cached. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// CacheTTL returns the report cache time-to-live.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
