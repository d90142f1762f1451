package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textverse/pkg/shutdown"
)

func TestWait_RunsAllHooks(t *testing.T) {
	var succeeded, failed atomic.Bool

	done := make(chan struct{})
	go func() {
		shutdown.Wait(2*time.Second,
			func(context.Context) error {
				succeeded.Store(true)
				return nil
			},
			func(context.Context) error {
				failed.Store(true)
				return errors.New("close failed")
			},
		)
		close(done)
	}()

	// Ожидание регистрации обработчика сигнала.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after signal")
	}

	// Сбой одного хука не мешает выполнению остальных.
	assert.True(t, succeeded.Load())
	assert.True(t, failed.Load())
}

func TestWait_TimeoutUnblocksStuckHook(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	done := make(chan struct{})
	go func() {
		shutdown.Wait(100*time.Millisecond, func(ctx context.Context) error {
			<-release
			return nil
		})
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after timeout")
	}
}
