package sources

import (
	"fmt"
	"time"
)

const (
	LanguageEN = "en"
	LanguageFR = "fr"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Config holds configuration for the card page sources.
type Config struct {
	// Language selects the source: en (limitless) or fr (pokekalos).
	Language string `mapstructure:"language" default:"en"`
	// DelayMillis is the pause between two page requests.
	// A negative value uses the source's own default.
	DelayMillis int `mapstructure:"delay_millis" default:"-1"`
	// RetryMax is the number of retries of a failed page request.
	RetryMax int `mapstructure:"retry_max" default:"3"`
	// RetryWaitMillis is the initial wait between retries.
	RetryWaitMillis int `mapstructure:"retry_wait_millis" default:"500"`
	// TimeoutSeconds bounds a single page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// TablesPath optionally overrides the embedded reconciliation tables.
	TablesPath string `mapstructure:"tables_path" default:""`
	// OutputDir is where the JSON outputs are written.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:""`
}

// Validate checks the language.
func (c Config) Validate() error {
	switch c.Language {
	case LanguageEN, LanguageFR:
		return nil
	default:
		return fmt.Errorf("scraper: unsupported language %q (want %s or %s)", c.Language, LanguageEN, LanguageFR)
	}
}

// Delay returns the configured politeness delay, or fallback when none is set.
func (c Config) Delay(fallback time.Duration) time.Duration {
	if c.DelayMillis < 0 {
		return fallback
	}
	return time.Duration(c.DelayMillis) * time.Millisecond
}
