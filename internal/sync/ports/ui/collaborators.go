// Package ui defines the contracts of the UI collaborators the sync
// service depends on.
package ui

import "context"

// Sanitizer приводит произвольный насыщенный текст к безопасному
// виду, пригодному для хранения.
type Sanitizer interface {
	Sanitize(content string) string
}

// Clipboard записывает текст в буфер обмена.
type Clipboard interface {
	Write(text string) error
}

// Notifier доставляет пользователю подтверждающие сообщения операций.
type Notifier interface {
	Notify(ctx context.Context, message string)
}
