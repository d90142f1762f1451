package ui

import (
	"context"

	"go.uber.org/zap"

	ports "textverse/internal/sync/ports/ui"
	"textverse/pkg/logger"
)

// Notifier доставляет подтверждающие сообщения операций в журнал.
// Слой отображения подставляет сюда собственную реализацию (toast).
type Notifier struct{}

// NewNotifier создает журнальный notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify записывает пользовательское сообщение в журнал.
func (n *Notifier) Notify(ctx context.Context, message string) {
	logger.Log(ctx).Info(ctx, "user notification", zap.String("message", message))
}

var _ ports.Notifier = (*Notifier)(nil)
