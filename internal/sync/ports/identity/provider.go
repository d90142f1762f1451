// Package identity defines the identity provider contract.
package identity

import "context"

// User описывает аутентифицированного пользователя.
type User struct {
	UID string
}

// Provider возвращает текущего пользователя сессии.
// Nil без ошибки означает анонимный режим.
type Provider interface {
	CurrentUser(ctx context.Context) (*User, error)
}
