package config

// DefaultCacheAssets is the asset manifest captured into the offline cache
// at startup: the entry pages plus every stylesheet and script under the
// static directory.
var DefaultCacheAssets = []string{
	"/",
	"**/*.css",
	"**/*.js",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:        5000,
		DataDir:     "data",
		StaticDir:   "static",
		ServerURL:   "http://localhost:5000",
		CacheAssets: DefaultCacheAssets,
	}
}
