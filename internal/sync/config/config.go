// Package config содержит конфигурацию службы синхронизации.
package config

import (
	"context"

	"textverse/pkg/config"
)

// serviceName используется в логах загрузки конфигурации.
const serviceName = "sync"

// Config объединяет конфигурацию всех компонентов службы.
type Config struct {
	Logging  LoggingConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	App      AppConfig
	Shutdown ShutdownConfig
}

// Load загружает конфигурацию службы синхронизации.
func Load(ctx context.Context) (*Config, error) {
	return config.Load[Config](ctx, serviceName)
}
