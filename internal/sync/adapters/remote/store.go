// Package remote реализует удаленное документное хранилище заметок
// поверх Redis. Раскладка путей: users:{uid}:notes, users:{uid}:trash,
// users:{uid}:folders и глобальный publicNotes; каждая заметка -
// отдельное поле хеша с JSON-документом.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"textverse/internal/sync/config"
	"textverse/internal/sync/domain/entities"
	"textverse/internal/sync/ports/storage"
	"textverse/pkg/logger"
)

// publicNotesKey - глобальный хеш записей публикации.
const publicNotesKey = "publicNotes"

// Store реализует storage.Backend и storage.Watcher поверх Redis.
type Store struct {
	client *redis.Client
}

// New создает клиент Redis и проверяет соединение.
func New(ctx context.Context, cfg *config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Log(ctx).Info(ctx, "remote store ready", zap.String("addr", cfg.Addr()))
	return &Store{client: client}, nil
}

// NewFromClient оборачивает готовый клиент Redis.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	return s.client.Close()
}

func notesKey(uid string) string   { return "users:" + uid + ":notes" }
func trashKey(uid string) string   { return "users:" + uid + ":trash" }
func foldersKey(uid string) string { return "users:" + uid + ":folders" }
func eventsKey(uid string) string  { return "users:" + uid + ":events" }

func (s *Store) readNotesHash(ctx context.Context, key string) (map[string]*entities.Note, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	notes := make(map[string]*entities.Note, len(fields))
	for id, body := range fields {
		var note entities.Note
		if err := json.Unmarshal([]byte(body), &note); err != nil {
			return nil, fmt.Errorf("failed to decode note %q: %w", id, err)
		}
		notes[id] = &note
	}
	return notes, nil
}

func (s *Store) writeNoteField(ctx context.Context, key string, note *entities.Note) error {
	body, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to encode note %q: %w", note.ID, err)
	}
	if err := s.client.HSet(ctx, key, note.ID, string(body)).Err(); err != nil {
		return fmt.Errorf("failed to write note %q: %w", note.ID, err)
	}
	return nil
}

// publish уведомляет подписчиков об изменении коллекции заметок.
// Сбой публикации не считается сбоем записи: данные уже сохранены,
// подписчики получат состояние при следующем событии.
func (s *Store) publish(ctx context.Context, uid string) {
	if err := s.client.Publish(ctx, eventsKey(uid), "notes").Err(); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to publish notes event",
			zap.String("uid", uid), zap.Error(err))
	}
}

// Note возвращает активную заметку или nil.
func (s *Store) Note(ctx context.Context, uid, noteID string) (*entities.Note, error) {
	body, err := s.client.HGet(ctx, notesKey(uid), noteID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read note %q: %w", noteID, err)
	}
	var note entities.Note
	if err := json.Unmarshal([]byte(body), &note); err != nil {
		return nil, fmt.Errorf("failed to decode note %q: %w", noteID, err)
	}
	return &note, nil
}

// Notes возвращает все активные заметки пользователя.
func (s *Store) Notes(ctx context.Context, uid string) (map[string]*entities.Note, error) {
	return s.readNotesHash(ctx, notesKey(uid))
}

// SaveNote записывает заметку и публикует событие изменения.
func (s *Store) SaveNote(ctx context.Context, uid string, note *entities.Note) error {
	if err := s.writeNoteField(ctx, notesKey(uid), note); err != nil {
		return err
	}
	s.publish(ctx, uid)
	return nil
}

// SaveNotes записывает пакет заметок атомарно через транзакционный конвейер.
func (s *Store) SaveNotes(ctx context.Context, uid string, batch []*entities.Note) error {
	if len(batch) == 0 {
		return nil
	}
	pipe := s.client.TxPipeline()
	for _, note := range batch {
		body, err := json.Marshal(note)
		if err != nil {
			return fmt.Errorf("failed to encode note %q: %w", note.ID, err)
		}
		pipe.HSet(ctx, notesKey(uid), note.ID, string(body))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write notes batch: %w", err)
	}
	s.publish(ctx, uid)
	return nil
}

// DeleteNote удаляет заметку и публикует событие изменения.
func (s *Store) DeleteNote(ctx context.Context, uid, noteID string) error {
	if err := s.client.HDel(ctx, notesKey(uid), noteID).Err(); err != nil {
		return fmt.Errorf("failed to delete note %q: %w", noteID, err)
	}
	s.publish(ctx, uid)
	return nil
}

// TrashedNotes возвращает содержимое корзины.
func (s *Store) TrashedNotes(ctx context.Context, uid string) (map[string]*entities.Note, error) {
	return s.readNotesHash(ctx, trashKey(uid))
}

// SaveTrashed записывает заметку в корзину.
func (s *Store) SaveTrashed(ctx context.Context, uid string, note *entities.Note) error {
	return s.writeNoteField(ctx, trashKey(uid), note)
}

// DeleteTrashed удаляет заметку из корзины.
func (s *Store) DeleteTrashed(ctx context.Context, uid, noteID string) error {
	if err := s.client.HDel(ctx, trashKey(uid), noteID).Err(); err != nil {
		return fmt.Errorf("failed to delete trashed note %q: %w", noteID, err)
	}
	return nil
}

// EmptyTrash удаляет хеш корзины целиком.
func (s *Store) EmptyTrash(ctx context.Context, uid string) error {
	if err := s.client.Del(ctx, trashKey(uid)).Err(); err != nil {
		return fmt.Errorf("failed to empty trash: %w", err)
	}
	return nil
}

// Folders возвращает сохраненный список папок. Встроенные псевдопапки
// не сохраняются в Redis и добавляются при чтении; пользовательские
// папки возвращаются в алфавитном порядке, так как порядок полей
// хеша не определен.
func (s *Store) Folders(ctx context.Context, uid string) ([]string, error) {
	names, err := s.client.HKeys(ctx, foldersKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read folders: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)
	return append(entities.DefaultFolders(), names...), nil
}

// SaveFolders сохраняет список папок, опуская встроенные псевдопапки.
func (s *Store) SaveFolders(ctx context.Context, uid string, folders []string) error {
	fields := make(map[string]any)
	for _, name := range folders {
		if entities.IsProtectedFolder(name) {
			continue
		}
		fields[name] = "1"
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, foldersKey(uid))
	if len(fields) > 0 {
		pipe.HSet(ctx, foldersKey(uid), fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save folders: %w", err)
	}
	return nil
}

// PublicNote возвращает запись публикации или nil.
func (s *Store) PublicNote(ctx context.Context, publicID string) (*entities.PublicNote, error) {
	body, err := s.client.HGet(ctx, publicNotesKey, publicID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read public note %q: %w", publicID, err)
	}
	var publicNote entities.PublicNote
	if err := json.Unmarshal([]byte(body), &publicNote); err != nil {
		return nil, fmt.Errorf("failed to decode public note %q: %w", publicID, err)
	}
	return &publicNote, nil
}

// PublicNotes возвращает все записи публикации.
func (s *Store) PublicNotes(ctx context.Context) (map[string]*entities.PublicNote, error) {
	fields, err := s.client.HGetAll(ctx, publicNotesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read public notes: %w", err)
	}
	public := make(map[string]*entities.PublicNote, len(fields))
	for id, body := range fields {
		var publicNote entities.PublicNote
		if err := json.Unmarshal([]byte(body), &publicNote); err != nil {
			return nil, fmt.Errorf("failed to decode public note %q: %w", id, err)
		}
		public[id] = &publicNote
	}
	return public, nil
}

// SavePublicNote сохраняет запись публикации.
func (s *Store) SavePublicNote(ctx context.Context, publicNote *entities.PublicNote) error {
	body, err := json.Marshal(publicNote)
	if err != nil {
		return fmt.Errorf("failed to encode public note: %w", err)
	}
	if err := s.client.HSet(ctx, publicNotesKey, publicNote.PublicID, string(body)).Err(); err != nil {
		return fmt.Errorf("failed to write public note: %w", err)
	}
	return nil
}

// DeletePublicNote удаляет запись публикации.
func (s *Store) DeletePublicNote(ctx context.Context, publicID string) error {
	if err := s.client.HDel(ctx, publicNotesKey, publicID).Err(); err != nil {
		return fmt.Errorf("failed to delete public note %q: %w", publicID, err)
	}
	return nil
}

// ClearAll удаляет заметки, корзину и папки пользователя.
func (s *Store) ClearAll(ctx context.Context, uid string) error {
	if err := s.client.Del(ctx, notesKey(uid), trashKey(uid), foldersKey(uid)).Err(); err != nil {
		return fmt.Errorf("failed to clear user data: %w", err)
	}
	s.publish(ctx, uid)
	return nil
}

var _ storage.Backend = (*Store)(nil)
