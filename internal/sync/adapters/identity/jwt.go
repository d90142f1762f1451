// Package identity содержит адаптер провайдера идентификации на основе JWT.
package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"textverse/internal/sync/ports/identity"
	"textverse/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodCurrentUser  = "CurrentUser"
	msgValidatingToken = "validating session token"
	msgInvalidToken    = "invalid session token"
)

// Ошибки проверки токена.
var (
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrInvalidToken     = errors.New("invalid session token")
)

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Provider проверяет токен сессии и сообщает текущего пользователя.
// Пустой токен означает анонимный режим. Смена токена (вход/выход)
// не переносит данные между хранилищами.
type Provider struct {
	secretKey []byte

	mu    sync.RWMutex
	token string
}

// NewProvider создает провайдер идентификации с заданным секретом.
func NewProvider(secretKey string) *Provider {
	return &Provider{secretKey: []byte(secretKey)}
}

// SetSessionToken устанавливает токен текущей сессии; пустая строка - выход.
func (p *Provider) SetSessionToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
}

// CurrentUser возвращает пользователя текущей сессии или nil для анонима.
func (p *Provider) CurrentUser(ctx context.Context) (*identity.User, error) {
	p.mu.RLock()
	tokenString := p.token
	p.mu.RUnlock()

	if tokenString == "" {
		return nil, nil
	}

	log := logger.Log(ctx).With(zap.String("method", methodCurrentUser))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return p.secretKey, nil
	})
	if err != nil {
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return nil, fmt.Errorf("parsing token: %w", ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("validating claims: %w", ErrInvalidToken)
	}

	return &identity.User{UID: claims.UserID}, nil
}

var _ identity.Provider = (*Provider)(nil)
