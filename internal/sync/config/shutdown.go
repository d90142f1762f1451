package config

import "time"

// ShutdownConfig содержит настройки корректного завершения.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"SYNC_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// GetTimeout возвращает timeout завершения.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	return s.Timeout
}
