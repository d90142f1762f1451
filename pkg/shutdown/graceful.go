// Package shutdown предоставляет функциональность для корректного
// завершения службы по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"textverse/pkg/logger"
)

// Сообщения журнала завершения.
const (
	msgSignalReceived = "shutdown signal received"
	msgHookFailed     = "shutdown hook failed"
	msgTimedOut       = "shutdown timed out before all hooks completed"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем выполняет все хуки параллельно в рамках заданного timeout.
// Ошибки хуков не прерывают завершение и попадают в журнал.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	signal.Stop(sigCh)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.Log(ctx)
	log.Info(ctx, msgSignalReceived, zap.String("signal", sig.String()))

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn func(context.Context) error) {
			defer wgp.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, msgHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, msgTimedOut, zap.Duration("timeout", timeout))
	}
}
