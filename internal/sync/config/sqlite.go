package config

// SQLiteConfig содержит настройки локального хранилища.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SYNC_SQLITE_PATH" env-default:"textverse.db"`
}
