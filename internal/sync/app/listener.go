package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"textverse/internal/sync/ports/storage"
	"textverse/pkg/logger"
)

// ListenerState - состояние слушателя удаленных изменений.
type ListenerState string

// Состояния слушателя.
const (
	Detached ListenerState = "detached"
	Attached ListenerState = "attached"
)

// Ошибки присоединения слушателя.
var (
	ErrNotAuthenticated = errors.New("listener requires an authenticated session")
	ErrWatchUnsupported = errors.New("backend does not support watching")
)

// Listener подписывается на push-уведомления удаленного хранилища.
// Каждое уведомление целиком замещает активный набор заметок
// (last-write-wins, без слияния по полям) и заново выводит порядок.
type Listener struct {
	sc *SyncContext

	mu    sync.Mutex
	unsub storage.Unsubscribe
}

// NewListener создает слушатель для контекста синхронизации.
func NewListener(sc *SyncContext) *Listener {
	return &Listener{sc: sc}
}

// State возвращает текущее состояние слушателя.
func (l *Listener) State() ListenerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unsub != nil {
		return Attached
	}
	return Detached
}

// Attach подписывается на изменения коллекции заметок. Допустимо только
// для аутентифицированной сессии и хранилища со способностью Watcher.
// Повторный вызов в присоединенном состоянии - no-op.
func (l *Listener) Attach(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unsub != nil {
		return nil
	}

	sess := l.sc.currentSession(ctx)
	if !sess.loggedIn {
		return syncErr("attach", ErrNotAuthenticated)
	}
	watcher, ok := sess.backend.(storage.Watcher)
	if !ok {
		return syncErr("attach", ErrWatchUnsupported)
	}

	// Уведомления приходят после возврата из Attach; контекст подписки
	// не должен зависеть от контекста вызова.
	watchCtx := context.Background()
	if log, err := logger.FromContext(ctx); err == nil {
		watchCtx = logger.NewContext(watchCtx, log)
	}

	unsub, err := watcher.WatchNotes(watchCtx, sess.uid, func() {
		l.apply(watchCtx, sess)
	})
	if err != nil {
		return syncErr("attach", err)
	}

	l.unsub = unsub
	logger.Log(ctx).Info(ctx, "live sync attached", zap.String("uid", sess.uid))
	return nil
}

// apply перечитывает коллекцию заметок и целиком замещает рабочий набор.
func (l *Listener) apply(ctx context.Context, sess session) {
	notes, err := sess.backend.Notes(ctx, sess.uid)
	if err != nil {
		logger.Log(ctx).Error(ctx, "live sync reload failed", zap.Error(err))
		return
	}

	l.sc.mu.Lock()
	l.sc.notes = l.sc.notes[:0]
	for _, note := range notes {
		l.sc.notes = append(l.sc.notes, note)
	}
	l.sc.reorderLocked()
	l.sc.mu.Unlock()

	logger.Log(ctx).Debug(ctx, "live sync applied", zap.Int("notes", len(notes)))
}

// Detach освобождает подписку ровно один раз; повторный вызов - no-op.
func (l *Listener) Detach(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unsub == nil {
		return nil
	}
	unsub := l.unsub
	l.unsub = nil

	if err := unsub(); err != nil {
		logger.Log(ctx).Error(ctx, "live sync detach failed", zap.Error(err))
		return syncErr("detach", err)
	}
	logger.Log(ctx).Info(ctx, "live sync detached")
	return nil
}
