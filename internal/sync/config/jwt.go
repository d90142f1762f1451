package config

// JWTConfig содержит настройки проверки токенов доступа.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key" env:"SYNC_JWT_SECRET_KEY" env-default:"development-secret"`
}
