package config

import (
	"fmt"
	"time"
)

// RedisConfig содержит настройки подключения к удаленному хранилищу.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"SYNC_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"SYNC_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"SYNC_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"SYNC_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"SYNC_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"SYNC_REDIS_TIMEOUT" env-default:"5s"`
}

// Addr возвращает адрес подключения host:port.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
