package catalog

// Config holds configuration for the master catalog download.
type Config struct {
	// URL is the address of the master catalog document.
	URL string `mapstructure:"url" default:"https://ptcgp.raenonx.cc/api/data/global-master"`
	// CacheTTLSeconds is how long a built index is reused. Zero rebuilds on every use.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"3600"`
	// TimeoutSeconds bounds the catalog download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// RetryMax is the number of retries of a failed download.
	RetryMax int `mapstructure:"retry_max" default:"2"`
}
