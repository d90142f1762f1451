// Package main реализует точку входа службы синхронизации заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"textverse/internal/sync/adapters/httpapi"
	identityadapter "textverse/internal/sync/adapters/identity"
	"textverse/internal/sync/adapters/local"
	"textverse/internal/sync/adapters/remote"
	"textverse/internal/sync/adapters/ui"
	"textverse/internal/sync/app"
	"textverse/internal/sync/config"
	"textverse/internal/sync/domain/ordering"
	"textverse/pkg/logger"
	"textverse/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode   = "SYNC_LOGGER_MODE"
	EnvLoggerLevel  = "SYNC_LOGGER_LEVEL"
	EnvSessionToken = "SYNC_SESSION_TOKEN"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitLocalStore       = "failed to initialize local store"
	ErrInitRemoteStore      = "failed to initialize remote store"
	ErrLoadWorkingSet       = "failed to load working set"
	ErrStartHTTP            = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "sync service started"
	LogServiceShutdownDone = "sync service shutdown complete"
	LogInitStores          = "initializing stores"
	LogInitRepositories    = "initializing repositories"
	LogStartingHTTP        = "starting HTTP server"
	LogDetachingListener   = "detaching live sync listener"
	LogClosingStores       = "closing stores"
	LogStoppingHTTP        = "stopping HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogInitStores)
		localStore, err := local.New(ctx, cfg.SQLite.Path)
		if err != nil {
			log.Error(ctx, ErrInitLocalStore, zap.Error(err))
			exitCode = 1
			return
		}
		remoteStore, err := remote.New(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrInitRemoteStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepositories)
		provider := identityadapter.NewProvider(cfg.JWT.SecretKey)
		provider.SetSessionToken(os.Getenv(EnvSessionToken))
		syncCtx := app.NewSyncContext(provider, localStore, remoteStore,
			cfg.App.Origin, ordering.SortType(cfg.App.SortType))
		noteRepo := app.NewNoteRepository(syncCtx, ui.NewSanitizer(), ui.NewClipboard(), ui.NewNotifier())
		folderRepo := app.NewFolderRepository(syncCtx, ui.NewNotifier())
		listener := app.NewListener(syncCtx)

		if err := folderRepo.Load(ctx); err != nil {
			log.Error(ctx, ErrLoadWorkingSet, zap.Error(err))
			exitCode = 1
			return
		}
		if err := noteRepo.Load(ctx); err != nil {
			log.Error(ctx, ErrLoadWorkingSet, zap.Error(err))
			exitCode = 1
			return
		}

		// Присоединение слушателя уместно только для аутентифицированной
		// сессии; сбой не фатален, слушатель остается отсоединенным.
		if err := listener.Attach(ctx); err != nil {
			log.Warn(ctx, "live sync unavailable", zap.Error(err))
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level))

		log.Info(ctx, LogStartingHTTP, zap.String("addr", cfg.HTTP.Addr()))
		httpApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		httpapi.SetupRouter(httpApp, remoteStore)

		go func() {
			if err := httpApp.Listen(cfg.HTTP.Addr()); err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return httpApp.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogDetachingListener)
				return listener.Detach(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingStores)
				if err := localStore.Close(); err != nil {
					return err
				}
				return remoteStore.Close()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
