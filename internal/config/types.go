package config

// Config is the top-level POS configuration, corresponding to .schoolpos.yml.
type Config struct {
	Port         int      `yaml:"port" koanf:"port"`
	DataDir      string   `yaml:"data_dir" koanf:"data_dir"`
	StaticDir    string   `yaml:"static_dir" koanf:"static_dir"`
	ServerURL    string   `yaml:"server_url" koanf:"server_url"`
	AllowAllCORS bool     `yaml:"allow_all_cors" koanf:"allow_all_cors"`
	CacheAssets  []string `yaml:"cache_assets" koanf:"cache_assets"`
}
