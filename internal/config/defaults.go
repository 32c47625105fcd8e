package config

const (
	defaultConfigPath  = "~/.config/mod6/config.toml"
	projectConfigName  = "mod6.toml"
	defaultCatalogPath = "~/.local/share/mod6/catalog.db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogPath: defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
