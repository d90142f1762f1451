// Package storage defines the persistence contracts for the sync service.
package storage

import (
	"context"

	"textverse/internal/sync/domain/entities"
)

// Backend - единый контракт хранилища заметок. Ему соответствуют две
// реализации: локальное синхронное key-value хранилище и удаленное
// документное хранилище. Доменная логика (очистка содержимого,
// временные метки, порядок отображения) в реализациях отсутствует.
type Backend interface {
	// Note возвращает активную заметку или nil, если ее нет.
	Note(ctx context.Context, uid, noteID string) (*entities.Note, error)
	// Notes возвращает все активные заметки пользователя по идентификатору.
	Notes(ctx context.Context, uid string) (map[string]*entities.Note, error)
	// SaveNote записывает заметку целиком в активное пространство.
	SaveNote(ctx context.Context, uid string, note *entities.Note) error
	// SaveNotes записывает пакет заметок. Удаленное хранилище обязано
	// выполнить запись атомарно, локальное - поэлементно.
	SaveNotes(ctx context.Context, uid string, notes []*entities.Note) error
	// DeleteNote удаляет заметку из активного пространства.
	DeleteNote(ctx context.Context, uid, noteID string) error

	// TrashedNotes возвращает все заметки в корзине.
	TrashedNotes(ctx context.Context, uid string) (map[string]*entities.Note, error)
	// SaveTrashed записывает заметку в пространство корзины.
	SaveTrashed(ctx context.Context, uid string, note *entities.Note) error
	// DeleteTrashed удаляет заметку из корзины.
	DeleteTrashed(ctx context.Context, uid, noteID string) error
	// EmptyTrash удаляет все заметки из корзины.
	EmptyTrash(ctx context.Context, uid string) error

	// Folders возвращает сохраненный список папок; пустой список
	// означает, что папки еще не сохранялись.
	Folders(ctx context.Context, uid string) ([]string, error)
	// SaveFolders сохраняет полный список папок.
	SaveFolders(ctx context.Context, uid string, folders []string) error

	// PublicNote возвращает запись публикации по publicId или nil.
	PublicNote(ctx context.Context, publicID string) (*entities.PublicNote, error)
	// PublicNotes возвращает все записи публикации по publicId.
	PublicNotes(ctx context.Context) (map[string]*entities.PublicNote, error)
	// SavePublicNote сохраняет запись публикации.
	SavePublicNote(ctx context.Context, publicNote *entities.PublicNote) error
	// DeletePublicNote удаляет запись публикации.
	DeletePublicNote(ctx context.Context, publicID string) error

	// ClearAll удаляет все заметки и папки пользователя.
	ClearAll(ctx context.Context, uid string) error
}

// Unsubscribe освобождает подписку. Повторный вызов - no-op.
type Unsubscribe func() error

// Watcher - необязательная способность хранилища уведомлять об изменениях
// коллекции активных заметок, внесенных другими клиентами.
type Watcher interface {
	// WatchNotes вызывает onChange после каждого изменения коллекции
	// заметок пользователя до освобождения подписки.
	WatchNotes(ctx context.Context, uid string, onChange func()) (Unsubscribe, error)
}
