// Package local реализует локальное хранилище заметок поверх SQLite.
// Раскладка повторяет браузерное key-value хранилище: документы notes,
// deletedNotes, folders и publicNotes целиком сериализуются в JSON.
// Хранилище однопользовательское, измерение uid игнорируется.
package local

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3" // драйвер sqlite3 для database/sql
	"go.uber.org/zap"

	"textverse/internal/sync/domain/entities"
	"textverse/internal/sync/ports/storage"
	"textverse/pkg/logger"
)

// Имена документов хранилища.
const (
	docNotes   = "notes"
	docTrash   = "deletedNotes"
	docFolders = "folders"
	docPublic  = "publicNotes"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store реализует storage.Backend поверх SQLite.
type Store struct {
	db *sql.DB
}

// New открывает файл базы данных и применяет миграции.
func New(ctx context.Context, path string) (*Store, error) {
	log := logger.Log(ctx)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping local store: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		return nil, err
	}

	log.Info(ctx, "local store ready", zap.String("path", path))
	return &Store{db: db}, nil
}

func applyMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close закрывает файл базы данных.
func (s *Store) Close() error {
	return s.db.Close()
}

// readDoc читает документ в out; отсутствие документа оставляет out без изменений.
func (s *Store) readDoc(ctx context.Context, name string, out any) error {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = ?`, name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read document %q: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to decode document %q: %w", name, err)
	}
	return nil
}

func (s *Store) writeDoc(ctx context.Context, name string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents(name, body) VALUES (?, ?)
         ON CONFLICT(name) DO UPDATE SET body = excluded.body`,
		name, string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to write document %q: %w", name, err)
	}
	return nil
}

func (s *Store) dropDoc(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE name = ?`, name,
	); err != nil {
		return fmt.Errorf("failed to drop document %q: %w", name, err)
	}
	return nil
}

func (s *Store) notesDoc(ctx context.Context, name string) (map[string]*entities.Note, error) {
	notes := make(map[string]*entities.Note)
	if err := s.readDoc(ctx, name, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Note возвращает активную заметку или nil.
func (s *Store) Note(ctx context.Context, _, noteID string) (*entities.Note, error) {
	notes, err := s.notesDoc(ctx, docNotes)
	if err != nil {
		return nil, err
	}
	return notes[noteID], nil
}

// Notes возвращает все активные заметки.
func (s *Store) Notes(ctx context.Context, _ string) (map[string]*entities.Note, error) {
	return s.notesDoc(ctx, docNotes)
}

// SaveNote записывает заметку в активный документ.
func (s *Store) SaveNote(ctx context.Context, _ string, note *entities.Note) error {
	notes, err := s.notesDoc(ctx, docNotes)
	if err != nil {
		return err
	}
	notes[note.ID] = note
	return s.writeDoc(ctx, docNotes, notes)
}

// SaveNotes записывает пакет заметок одной локальной перезаписью документа.
func (s *Store) SaveNotes(ctx context.Context, _ string, batch []*entities.Note) error {
	notes, err := s.notesDoc(ctx, docNotes)
	if err != nil {
		return err
	}
	for _, note := range batch {
		notes[note.ID] = note
	}
	return s.writeDoc(ctx, docNotes, notes)
}

// DeleteNote удаляет заметку из активного документа.
func (s *Store) DeleteNote(ctx context.Context, _, noteID string) error {
	notes, err := s.notesDoc(ctx, docNotes)
	if err != nil {
		return err
	}
	delete(notes, noteID)
	return s.writeDoc(ctx, docNotes, notes)
}

// TrashedNotes возвращает содержимое корзины.
func (s *Store) TrashedNotes(ctx context.Context, _ string) (map[string]*entities.Note, error) {
	return s.notesDoc(ctx, docTrash)
}

// SaveTrashed записывает заметку в корзину.
func (s *Store) SaveTrashed(ctx context.Context, _ string, note *entities.Note) error {
	trash, err := s.notesDoc(ctx, docTrash)
	if err != nil {
		return err
	}
	trash[note.ID] = note
	return s.writeDoc(ctx, docTrash, trash)
}

// DeleteTrashed удаляет заметку из корзины.
func (s *Store) DeleteTrashed(ctx context.Context, _, noteID string) error {
	trash, err := s.notesDoc(ctx, docTrash)
	if err != nil {
		return err
	}
	delete(trash, noteID)
	return s.writeDoc(ctx, docTrash, trash)
}

// EmptyTrash удаляет документ корзины целиком.
func (s *Store) EmptyTrash(ctx context.Context, _ string) error {
	return s.dropDoc(ctx, docTrash)
}

// Folders возвращает сохраненный список папок.
func (s *Store) Folders(ctx context.Context, _ string) ([]string, error) {
	var folders []string
	if err := s.readDoc(ctx, docFolders, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// SaveFolders сохраняет полный список папок.
func (s *Store) SaveFolders(ctx context.Context, _ string, folders []string) error {
	return s.writeDoc(ctx, docFolders, folders)
}

func (s *Store) publicDoc(ctx context.Context) (map[string]*entities.PublicNote, error) {
	public := make(map[string]*entities.PublicNote)
	if err := s.readDoc(ctx, docPublic, &public); err != nil {
		return nil, err
	}
	return public, nil
}

// PublicNote возвращает запись публикации или nil.
func (s *Store) PublicNote(ctx context.Context, publicID string) (*entities.PublicNote, error) {
	public, err := s.publicDoc(ctx)
	if err != nil {
		return nil, err
	}
	return public[publicID], nil
}

// PublicNotes возвращает все записи публикации.
func (s *Store) PublicNotes(ctx context.Context) (map[string]*entities.PublicNote, error) {
	return s.publicDoc(ctx)
}

// SavePublicNote сохраняет запись публикации.
func (s *Store) SavePublicNote(ctx context.Context, publicNote *entities.PublicNote) error {
	public, err := s.publicDoc(ctx)
	if err != nil {
		return err
	}
	public[publicNote.PublicID] = publicNote
	return s.writeDoc(ctx, docPublic, public)
}

// DeletePublicNote удаляет запись публикации.
func (s *Store) DeletePublicNote(ctx context.Context, publicID string) error {
	public, err := s.publicDoc(ctx)
	if err != nil {
		return err
	}
	delete(public, publicID)
	return s.writeDoc(ctx, docPublic, public)
}

// ClearAll удаляет заметки, корзину и папки.
func (s *Store) ClearAll(ctx context.Context, _ string) error {
	for _, name := range []string{docNotes, docTrash, docFolders} {
		if err := s.dropDoc(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

var _ storage.Backend = (*Store)(nil)
