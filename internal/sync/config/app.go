package config

// AppConfig содержит прикладные настройки службы.
type AppConfig struct {
	// Origin - базовый URL для публичных ссылок {origin}/public/{publicId}.
	Origin string `yaml:"origin" env:"SYNC_APP_ORIGIN" env-default:"http://localhost:8080"`
	// SortType - порядок сортировки по умолчанию: date или title.
	SortType string `yaml:"sort_type" env:"SYNC_APP_SORT_TYPE" env-default:"date"`
}
