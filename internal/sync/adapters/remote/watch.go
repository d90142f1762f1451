package remote

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"textverse/internal/sync/ports/storage"
	"textverse/pkg/logger"
)

// WatchNotes подписывается на события изменения коллекции заметок
// пользователя. onChange вызывается из фоновой горутины после каждого
// опубликованного события до освобождения подписки.
func (s *Store) WatchNotes(ctx context.Context, uid string, onChange func()) (storage.Unsubscribe, error) {
	pubsub := s.client.Subscribe(ctx, eventsKey(uid))

	// Гарантирует, что подписка оформлена до возврата.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to notes events: %w", err)
	}

	log := logger.Log(ctx).With(zap.String("uid", uid))
	log.Debug(ctx, "notes subscription attached")

	go func() {
		for range pubsub.Channel() {
			onChange()
		}
		log.Debug(ctx, "notes subscription closed")
	}()

	var once sync.Once
	unsubscribe := func() error {
		var err error
		once.Do(func() {
			err = pubsub.Close()
		})
		return err
	}
	return unsubscribe, nil
}

var _ storage.Watcher = (*Store)(nil)
