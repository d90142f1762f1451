package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"textverse/internal/sync/domain/entities"
	"textverse/internal/sync/ports/ui"
	"textverse/pkg/logger"
	"textverse/pkg/token"
)

// Сообщения пользователю.
const (
	msgNoteNotFound       = "Note not found."
	msgEmptyNote          = "Empty note discarded"
	msgNoteUnpublished    = "Note unpublished."
	msgNoteWasNotPublic   = "Note was not public."
	msgPublicLinkCopied   = "Public link copied to clipboard"
	msgPublicLinkFailed   = "Failed to copy public link"
	msgPermanentlyDeleted = "Note permanently deleted"
	msgTrashEmptied       = "Trash emptied successfully"
	msgAllNotesDeleted    = "All notes and folders deleted successfully!"
)

// NoteRepository реализует операции над заметками: CRUD, корзину,
// версии, публикацию и пакетные операции. Все операции работают
// с общим рабочим набором SyncContext и текущим хранилищем.
type NoteRepository struct {
	sc        *SyncContext
	sanitizer ui.Sanitizer
	clipboard ui.Clipboard
	notifier  ui.Notifier
	now       func() time.Time
}

// NewNoteRepository создает репозиторий заметок.
func NewNoteRepository(sc *SyncContext, sanitizer ui.Sanitizer, clipboard ui.Clipboard, notifier ui.Notifier) *NoteRepository {
	return &NoteRepository{
		sc:        sc,
		sanitizer: sanitizer,
		clipboard: clipboard,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Load загружает рабочий набор из текущего хранилища: активные заметки,
// корзину и карту публикаций пользователя.
func (r *NoteRepository) Load(ctx context.Context) error {
	sess := r.sc.currentSession(ctx)

	notes, err := sess.backend.Notes(ctx, sess.uid)
	if err != nil {
		return storageErr("load notes", err)
	}
	trashed, err := sess.backend.TrashedNotes(ctx, sess.uid)
	if err != nil {
		return storageErr("load trash", err)
	}

	public := make(map[string]string)
	if sess.loggedIn {
		records, err := sess.backend.PublicNotes(ctx)
		if err != nil {
			return storageErr("load public notes", err)
		}
		for _, record := range records {
			if record.UID == sess.uid {
				public[record.ID] = record.PublicID
			}
		}
	}

	r.sc.mu.Lock()
	defer r.sc.mu.Unlock()
	r.sc.notes = r.sc.notes[:0]
	for _, note := range notes {
		r.sc.notes = append(r.sc.notes, note)
	}
	r.sc.trash = r.sc.trash[:0]
	for _, note := range trashed {
		r.sc.trash = append(r.sc.trash, note)
	}
	r.sc.public = public
	r.sc.reorderLocked()

	logger.Log(ctx).Debug(ctx, "notes loaded",
		zap.Int("active", len(r.sc.notes)),
		zap.Int("trashed", len(r.sc.trash)))
	return nil
}

// Create создает заметку из черновика, сохраняет ее в текущем хранилище
// и добавляет в рабочий набор. Черновик без заголовка и содержимого
// отбрасывается.
func (r *NoteRepository) Create(ctx context.Context, draft entities.Draft) (*entities.Note, error) {
	draft.Content = r.sanitizer.Sanitize(draft.Content)
	note := entities.NewNote(draft, r.now().UTC())
	if note.IsEmpty() {
		r.notifier.Notify(ctx, msgEmptyNote)
		return nil, ErrEmptyNote
	}

	sess := r.sc.currentSession(ctx)
	if err := sess.backend.SaveNote(ctx, sess.uid, note); err != nil {
		return nil, storageErr("create note", err)
	}

	r.sc.mu.Lock()
	r.sc.notes = append(r.sc.notes, note)
	r.sc.reorderLocked()
	r.sc.mu.Unlock()

	r.notifier.Notify(ctx, note.Title+" added")
	return note, nil
}

// Update применяет частичное обновление к заметке. Содержимое заново
// очищается, last_edited всегда обновляется; изменение заголовка или
// содержимого пополняет историю. id и time_created неизменны.
// Обновление несуществующей заметки - no-op с сигналом ErrNotFound.
func (r *NoteRepository) Update(ctx context.Context, noteID string, patch entities.Patch) error {
	if patch.Content != nil {
		sanitized := r.sanitizer.Sanitize(*patch.Content)
		patch.Content = &sanitized
	}

	r.sc.mu.Lock()
	_, current := r.sc.noteLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	updated := current.Clone()
	r.sc.mu.Unlock()

	contentChanged := patch.Apply(updated)
	updated.LastEdited = r.now().UTC()
	if contentChanged {
		updated.History = append(updated.History, updated.Snapshot())
	}

	sess := r.sc.currentSession(ctx)
	if err := sess.backend.SaveNote(ctx, sess.uid, updated); err != nil {
		return storageErr("update note", err)
	}

	r.sc.installNote(updated)
	return nil
}

// Duplicate создает копию заметки с новым id, свежими временными
// метками и заголовком " (Copy)".
func (r *NoteRepository) Duplicate(ctx context.Context, noteID string) (*entities.Note, error) {
	r.sc.mu.Lock()
	_, source := r.sc.noteLocked(noteID)
	if source == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return nil, ErrNotFound
	}
	duplicate := entities.NewDuplicate(source, r.now().UTC())
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	if err := sess.backend.SaveNote(ctx, sess.uid, duplicate); err != nil {
		return nil, storageErr("duplicate note", err)
	}

	r.sc.mu.Lock()
	r.sc.notes = append(r.sc.notes, duplicate)
	r.sc.reorderLocked()
	r.sc.mu.Unlock()

	r.notifier.Notify(ctx, duplicate.Title+" created")
	return duplicate, nil
}

// Delete выполняет мягкое удаление: заметка покидает активное
// пространство, получает time_deleted и перемещается в корзину.
// Это перемещение, а не копирование.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	return r.delete(ctx, noteID, true)
}

func (r *NoteRepository) delete(ctx context.Context, noteID string, notify bool) error {
	r.sc.mu.Lock()
	index, current := r.sc.noteLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	snap := r.sc.snapshotLocked()
	trashed := current.Clone()
	deletedAt := r.now().UTC()
	trashed.TimeDeleted = &deletedAt
	r.sc.notes = append(r.sc.notes[:index], r.sc.notes[index+1:]...)
	r.sc.trash = append(r.sc.trash, trashed)
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	err := sess.backend.SaveTrashed(ctx, sess.uid, trashed)
	if err == nil {
		err = sess.backend.DeleteNote(ctx, sess.uid, noteID)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("delete note", err)
	}

	if notify {
		r.notifier.Notify(ctx, trashed.Title+" moved to trash")
	}
	return nil
}

// Restore возвращает заметку из корзины в активное пространство
// и убирает time_deleted. История и last_edited не меняются.
func (r *NoteRepository) Restore(ctx context.Context, noteID string) error {
	r.sc.mu.Lock()
	index, current := r.sc.trashedLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	snap := r.sc.snapshotLocked()
	restored := current.Clone()
	restored.TimeDeleted = nil
	r.sc.trash = append(r.sc.trash[:index], r.sc.trash[index+1:]...)
	r.sc.notes = append(r.sc.notes, restored)
	r.sc.reorderLocked()
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	err := sess.backend.SaveNote(ctx, sess.uid, restored)
	if err == nil {
		err = sess.backend.DeleteTrashed(ctx, sess.uid, noteID)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("restore note", err)
	}

	r.notifier.Notify(ctx, restored.Title+" restored")
	return nil
}

// PermanentlyDelete необратимо удаляет заметку из корзины.
// Связанная запись публикации удаляется каскадно.
func (r *NoteRepository) PermanentlyDelete(ctx context.Context, noteID string) error {
	return r.permanentlyDelete(ctx, noteID, true)
}

func (r *NoteRepository) permanentlyDelete(ctx context.Context, noteID string, notify bool) error {
	r.sc.mu.Lock()
	index, current := r.sc.trashedLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	snap := r.sc.snapshotLocked()
	publicID := r.sc.public[noteID]
	r.sc.trash = append(r.sc.trash[:index], r.sc.trash[index+1:]...)
	delete(r.sc.public, noteID)
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	err := sess.backend.DeleteTrashed(ctx, sess.uid, noteID)
	if err == nil && publicID != "" {
		err = sess.backend.DeletePublicNote(ctx, publicID)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("permanently delete note", err)
	}

	if notify {
		r.notifier.Notify(ctx, msgPermanentlyDeleted)
	}
	return nil
}

// EmptyTrash удаляет все заметки из корзины текущего хранилища.
// Чтение сразу после возврата видит пустую корзину.
func (r *NoteRepository) EmptyTrash(ctx context.Context) error {
	r.sc.mu.Lock()
	snap := r.sc.snapshotLocked()
	publicIDs := make([]string, 0)
	for _, note := range r.sc.trash {
		if publicID, ok := r.sc.public[note.ID]; ok {
			publicIDs = append(publicIDs, publicID)
			delete(r.sc.public, note.ID)
		}
	}
	r.sc.trash = r.sc.trash[:0]
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	err := sess.backend.EmptyTrash(ctx, sess.uid)
	for _, publicID := range publicIDs {
		if err != nil {
			break
		}
		err = sess.backend.DeletePublicNote(ctx, publicID)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("empty trash", err)
	}

	r.notifier.Notify(ctx, msgTrashEmptied)
	return nil
}

// TogglePin переключает закрепление заметки.
func (r *NoteRepository) TogglePin(ctx context.Context, noteID string) error {
	r.sc.mu.Lock()
	_, current := r.sc.noteLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	pinned := !current.Pinned
	r.sc.mu.Unlock()
	return r.setPinned(ctx, noteID, pinned, true)
}

// Pin закрепляет заметку: она отображается раньше незакрепленных.
func (r *NoteRepository) Pin(ctx context.Context, noteID string) error {
	return r.setPinned(ctx, noteID, true, true)
}

// Unpin снимает закрепление заметки.
func (r *NoteRepository) Unpin(ctx context.Context, noteID string) error {
	return r.setPinned(ctx, noteID, false, true)
}

func (r *NoteRepository) setPinned(ctx context.Context, noteID string, pinned, notify bool) error {
	r.sc.mu.Lock()
	_, current := r.sc.noteLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	updated := current.Clone()
	updated.Pinned = pinned
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	if err := sess.backend.SaveNote(ctx, sess.uid, updated); err != nil {
		return storageErr("pin note", err)
	}

	r.sc.installNote(updated)

	if notify {
		if pinned {
			r.notifier.Notify(ctx, updated.Title+" pinned")
		} else {
			r.notifier.Notify(ctx, updated.Title+" unpinned")
		}
	}
	return nil
}

// Move переназначает папку заметки. Виртуальная папка AllNotes
// недопустима как цель; существование остальных папок репозиторий
// заметок не проверяет.
func (r *NoteRepository) Move(ctx context.Context, noteID, targetFolder string) error {
	return r.move(ctx, noteID, targetFolder, true)
}

func (r *NoteRepository) move(ctx context.Context, noteID, targetFolder string, notify bool) error {
	if targetFolder == entities.AllNotes {
		return ErrVirtualFolder
	}

	r.sc.mu.Lock()
	_, current := r.sc.noteLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	updated := current.Clone()
	updated.Folder = targetFolder
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	if err := sess.backend.SaveNote(ctx, sess.uid, updated); err != nil {
		return storageErr("move note", err)
	}

	r.sc.installNote(updated)

	if notify {
		r.notifier.Notify(ctx, updated.Title+" moved to "+targetFolder)
	}
	return nil
}

// TogglePublic публикует заметку или отменяет публикацию. Публикация
// создает запись PublicNote со свежим publicId и копирует публичную
// ссылку в буфер обмена. Доступно только аутентифицированным сессиям.
func (r *NoteRepository) TogglePublic(ctx context.Context, noteID string) error {
	sess := r.sc.currentSession(ctx)
	if !sess.loggedIn {
		return ErrSignInRequired
	}

	r.sc.mu.Lock()
	publicID, shared := r.sc.public[noteID]
	_, current := r.sc.noteLocked(noteID)
	r.sc.mu.Unlock()

	if shared {
		if err := sess.backend.DeletePublicNote(ctx, publicID); err != nil {
			return storageErr("unpublish note", err)
		}
		r.sc.mu.Lock()
		delete(r.sc.public, noteID)
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteUnpublished)
		return nil
	}

	if current == nil {
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}

	publicNote := entities.NewPublicNote(current, sess.uid)
	if err := sess.backend.SavePublicNote(ctx, publicNote); err != nil {
		return storageErr("publish note", err)
	}

	r.sc.mu.Lock()
	r.sc.public[noteID] = publicNote.PublicID
	r.sc.mu.Unlock()

	link := r.sc.origin + "/public/" + publicNote.PublicID
	if err := r.clipboard.Write(link); err != nil {
		logger.Log(ctx).Warn(ctx, "clipboard write failed", zap.Error(err))
		r.notifier.Notify(ctx, msgPublicLinkFailed)
		return nil
	}
	r.notifier.Notify(ctx, msgPublicLinkCopied)
	return nil
}

// ImportBatch импортирует заметки: отсутствующие id, временные метки,
// pinned и folder заполняются значениями по умолчанию, содержимое
// очищается, недостающие папки создаются. Запись выполняется одним
// пакетом: атомарно для удаленного хранилища, поэлементно для локального.
func (r *NoteRepository) ImportBatch(ctx context.Context, notes []entities.Note) error {
	if len(notes) == 0 {
		return nil
	}

	now := r.now().UTC()
	batch := make([]*entities.Note, 0, len(notes))
	for i := range notes {
		note := notes[i].Clone()
		note.Content = r.sanitizer.Sanitize(note.Content)
		if note.ID == "" {
			note.ID = token.New()
		}
		if note.TimeCreated.IsZero() {
			note.TimeCreated = now
		}
		if note.LastEdited.IsZero() {
			note.LastEdited = now
		}
		if note.Folder == "" || note.Folder == entities.AllNotes {
			note.Folder = entities.Uncategorized
		}
		note.TimeDeleted = nil
		batch = append(batch, note)
	}

	r.sc.mu.Lock()
	snap := r.sc.snapshotLocked()
	known := make(map[string]bool, len(r.sc.folders))
	for _, folder := range r.sc.folders {
		known[folder] = true
	}
	foldersChanged := false
	for _, note := range batch {
		if !known[note.Folder] {
			r.sc.folders = append(r.sc.folders, note.Folder)
			known[note.Folder] = true
			foldersChanged = true
		}
	}
	folders := make([]string, len(r.sc.folders))
	copy(folders, r.sc.folders)
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	var err error
	if foldersChanged {
		err = sess.backend.SaveFolders(ctx, sess.uid, folders)
	}
	if err == nil {
		err = sess.backend.SaveNotes(ctx, sess.uid, batch)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("import notes", err)
	}

	r.sc.mu.Lock()
	existing := make(map[string]int, len(r.sc.notes))
	for i, note := range r.sc.notes {
		existing[note.ID] = i
	}
	for _, note := range batch {
		if i, ok := existing[note.ID]; ok {
			r.sc.notes[i] = note
		} else {
			r.sc.notes = append(r.sc.notes, note)
		}
	}
	r.sc.reorderLocked()
	r.sc.mu.Unlock()

	r.notifier.Notify(ctx, fmt.Sprintf("%d notes imported successfully", len(batch)))
	return nil
}

// importFields - обязательные поля каждой записи резервной копии.
var importFields = []string{"title", "content", "pinned"}

// ImportJSON разбирает и проверяет резервную копию, затем импортирует
// заметки. Записи без обязательных полей отклоняются целиком,
// состояние остается неизменным.
func (r *NoteRepository) ImportJSON(ctx context.Context, data []byte) error {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	for i, entry := range entries {
		for _, field := range importFields {
			if _, ok := entry[field]; !ok {
				return fmt.Errorf("%w: entry %d is missing %q", ErrInvalidImport, i, field)
			}
		}
	}

	var notes []entities.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	return r.ImportBatch(ctx, notes)
}

// ExportAll возвращает сериализуемую проекцию всех активных заметок
// для резервной копии, включая time_created и history.
func (r *NoteRepository) ExportAll(ctx context.Context) ([]entities.Note, error) {
	r.sc.mu.Lock()
	defer r.sc.mu.Unlock()

	exported := make([]entities.Note, 0, len(r.sc.notes))
	for _, note := range r.sc.notes {
		exported = append(exported, *note.Clone())
	}
	logger.Log(ctx).Debug(ctx, "notes exported", zap.Int("count", len(exported)))
	return exported, nil
}

// ExportJSON возвращает резервную копию в формате JSON.
func (r *NoteRepository) ExportJSON(ctx context.Context) ([]byte, error) {
	notes, err := r.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// BackupFileName возвращает имя файла резервной копии на текущую дату.
func (r *NoteRepository) BackupFileName() string {
	return "textVerse_backup_" + r.now().UTC().Format("2006-01-02") + ".json"
}

// ApplyHistoryVersion восстанавливает заголовок, содержимое и
// last_edited из выбранной записи истории и дописывает новую запись
// о восстановлении. История никогда не усекается.
func (r *NoteRepository) ApplyHistoryVersion(ctx context.Context, noteID string, version int) error {
	r.sc.mu.Lock()
	_, current := r.sc.noteLocked(noteID)
	if current == nil {
		r.sc.mu.Unlock()
		r.notifier.Notify(ctx, msgNoteNotFound)
		return ErrNotFound
	}
	if version < 0 || version >= len(current.History) {
		r.sc.mu.Unlock()
		return ErrVersionNotFound
	}
	restored := current.Clone()
	entry := restored.History[version]
	restored.Title = entry.Title
	restored.Content = entry.Content
	restored.LastEdited = entry.Timestamp
	restored.History = append(restored.History, entities.NoteHistory{
		Timestamp: r.now().UTC(),
		Title:     entry.Title,
		Content:   entry.Content,
	})
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	if err := sess.backend.SaveNote(ctx, sess.uid, restored); err != nil {
		return storageErr("apply history version", err)
	}

	r.sc.installNote(restored)
	return nil
}

// NoteByID возвращает активную заметку или nil.
func (r *NoteRepository) NoteByID(noteID string) *entities.Note {
	r.sc.mu.Lock()
	defer r.sc.mu.Unlock()
	_, note := r.sc.noteLocked(noteID)
	return note
}

// BatchDelete удаляет набор заметок: мягко или, для заметок корзины,
// окончательно. Список обрабатывается до конца даже при сбоях
// отдельных элементов.
func (r *NoteRepository) BatchDelete(ctx context.Context, noteIDs []string, permanent bool) error {
	var errs []error
	for _, noteID := range noteIDs {
		var err error
		if permanent {
			err = r.permanentlyDelete(ctx, noteID, false)
		} else {
			err = r.delete(ctx, noteID, false)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if permanent {
		r.notifier.Notify(ctx, "Selected notes permanently deleted")
	} else {
		r.notifier.Notify(ctx, "Selected notes moved to trash")
	}
	return errors.Join(errs...)
}

// BatchMove переназначает папку набора заметок.
func (r *NoteRepository) BatchMove(ctx context.Context, noteIDs []string, targetFolder string) error {
	var errs []error
	for _, noteID := range noteIDs {
		if err := r.move(ctx, noteID, targetFolder, false); err != nil {
			errs = append(errs, err)
		}
	}
	r.notifier.Notify(ctx, "Selected notes moved to "+targetFolder)
	return errors.Join(errs...)
}

// BatchPin закрепляет или снимает закрепление набора заметок.
func (r *NoteRepository) BatchPin(ctx context.Context, noteIDs []string, pinned bool) error {
	var errs []error
	for _, noteID := range noteIDs {
		if err := r.setPinned(ctx, noteID, pinned, false); err != nil {
			errs = append(errs, err)
		}
	}
	if pinned {
		r.notifier.Notify(ctx, "Selected notes pinned")
	} else {
		r.notifier.Notify(ctx, "Selected notes unpinned")
	}
	return errors.Join(errs...)
}

// DeleteAll удаляет все заметки и папки текущего хранилища и
// сбрасывает рабочий набор. Записи публикации удаленных заметок
// удаляются каскадно.
func (r *NoteRepository) DeleteAll(ctx context.Context) error {
	r.sc.mu.Lock()
	snap := r.sc.snapshotLocked()
	publicIDs := make([]string, 0, len(r.sc.public))
	for _, publicID := range r.sc.public {
		publicIDs = append(publicIDs, publicID)
	}
	r.sc.notes = r.sc.notes[:0]
	r.sc.trash = r.sc.trash[:0]
	r.sc.folders = entities.DefaultFolders()
	r.sc.currentFolder = entities.AllNotes
	r.sc.public = make(map[string]string)
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	err := sess.backend.ClearAll(ctx, sess.uid)
	for _, publicID := range publicIDs {
		if err != nil {
			break
		}
		err = sess.backend.DeletePublicNote(ctx, publicID)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("delete all notes", err)
	}

	r.notifier.Notify(ctx, msgAllNotesDeleted)
	return nil
}
