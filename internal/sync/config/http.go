package config

import (
	"fmt"
	"time"
)

// HTTPConfig содержит настройки HTTP сервера публичного доступа.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"SYNC_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"SYNC_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SYNC_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SYNC_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// Addr возвращает адрес прослушивания host:port.
func (h *HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
