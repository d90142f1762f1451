package app

import (
	"context"

	"go.uber.org/zap"

	"textverse/internal/sync/domain/entities"
	"textverse/internal/sync/domain/ordering"
	"textverse/internal/sync/ports/ui"
	"textverse/pkg/logger"
)

// Сообщения пользователю.
const (
	msgFolderExists    = "Folder already exists"
	msgFolderProtected = "Default folders cannot be modified"
)

// FolderRepository реализует операции над папками. Папки идентифицируются
// именем; переименование и удаление каскадно затрагивают заметки.
type FolderRepository struct {
	sc       *SyncContext
	notifier ui.Notifier
}

// NewFolderRepository создает репозиторий папок.
func NewFolderRepository(sc *SyncContext, notifier ui.Notifier) *FolderRepository {
	return &FolderRepository{sc: sc, notifier: notifier}
}

// Load загружает список папок из текущего хранилища. При первом
// использовании набор состоит ровно из AllNotes и Uncategorized.
func (r *FolderRepository) Load(ctx context.Context) error {
	sess := r.sc.currentSession(ctx)
	stored, err := sess.backend.Folders(ctx, sess.uid)
	if err != nil {
		return storageErr("load folders", err)
	}

	folders := entities.DefaultFolders()
	seen := map[string]bool{entities.AllNotes: true, entities.Uncategorized: true}
	for _, name := range stored {
		if !seen[name] {
			folders = append(folders, name)
			seen[name] = true
		}
	}

	r.sc.mu.Lock()
	r.sc.folders = folders
	r.sc.mu.Unlock()

	logger.Log(ctx).Debug(ctx, "folders loaded", zap.Int("count", len(folders)))
	return nil
}

// Create добавляет папку. Повторное имя отклоняется с ErrFolderExists,
// состояние остается неизменным.
func (r *FolderRepository) Create(ctx context.Context, name string) error {
	r.sc.mu.Lock()
	for _, folder := range r.sc.folders {
		if folder == name {
			r.sc.mu.Unlock()
			r.notifier.Notify(ctx, msgFolderExists)
			return ErrFolderExists
		}
	}
	snap := r.sc.snapshotLocked()
	r.sc.folders = append(r.sc.folders, name)
	folders := make([]string, len(r.sc.folders))
	copy(folders, r.sc.folders)
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	if err := sess.backend.SaveFolders(ctx, sess.uid, folders); err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("create folder", err)
	}
	return nil
}

// Rename переименовывает папку и каскадно переназначает все ее заметки.
// Встроенные псевдопапки и занятые имена недопустимы.
func (r *FolderRepository) Rename(ctx context.Context, oldName, newName string) error {
	if entities.IsProtectedFolder(oldName) || entities.IsProtectedFolder(newName) {
		r.notifier.Notify(ctx, msgFolderProtected)
		return ErrProtectedFolder
	}

	r.sc.mu.Lock()
	index := -1
	for i, folder := range r.sc.folders {
		if folder == newName {
			r.sc.mu.Unlock()
			r.notifier.Notify(ctx, msgFolderExists)
			return ErrFolderExists
		}
		if folder == oldName {
			index = i
		}
	}
	if index == -1 {
		r.sc.mu.Unlock()
		return ErrFolderNotFound
	}

	snap := r.sc.snapshotLocked()
	r.sc.folders[index] = newName
	folders := make([]string, len(r.sc.folders))
	copy(folders, r.sc.folders)

	members := make([]*entities.Note, 0)
	for i, note := range r.sc.notes {
		if note.Folder == oldName {
			moved := note.Clone()
			moved.Folder = newName
			r.sc.notes[i] = moved
			members = append(members, moved)
		}
	}
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	err := sess.backend.SaveFolders(ctx, sess.uid, folders)
	if err == nil && len(members) > 0 {
		err = sess.backend.SaveNotes(ctx, sess.uid, members)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("rename folder", err)
	}
	return nil
}

// Delete удаляет папку; ее заметки каскадно переходят в Uncategorized.
// Если папка была текущим фильтром, фильтр сбрасывается на AllNotes.
func (r *FolderRepository) Delete(ctx context.Context, name string) error {
	if entities.IsProtectedFolder(name) {
		r.notifier.Notify(ctx, msgFolderProtected)
		return ErrProtectedFolder
	}

	r.sc.mu.Lock()
	index := -1
	for i, folder := range r.sc.folders {
		if folder == name {
			index = i
			break
		}
	}
	if index == -1 {
		r.sc.mu.Unlock()
		return ErrFolderNotFound
	}

	snap := r.sc.snapshotLocked()
	r.sc.folders = append(r.sc.folders[:index], r.sc.folders[index+1:]...)
	folders := make([]string, len(r.sc.folders))
	copy(folders, r.sc.folders)

	members := make([]*entities.Note, 0)
	for i, note := range r.sc.notes {
		if note.Folder == name {
			moved := note.Clone()
			moved.Folder = entities.Uncategorized
			r.sc.notes[i] = moved
			members = append(members, moved)
		}
	}
	if r.sc.currentFolder == name {
		r.sc.currentFolder = entities.AllNotes
	}
	r.sc.mu.Unlock()

	sess := r.sc.currentSession(ctx)
	err := sess.backend.SaveFolders(ctx, sess.uid, folders)
	if err == nil && len(members) > 0 {
		err = sess.backend.SaveNotes(ctx, sess.uid, members)
	}
	if err != nil {
		r.sc.mu.Lock()
		r.sc.restoreLocked(snap)
		r.sc.mu.Unlock()
		return storageErr("delete folder", err)
	}

	r.notifier.Notify(ctx, "Folder "+name+" successfully deleted")
	return nil
}

// CountsByFolder возвращает число заметок в каждой известной папке.
// Значения всегда выводятся заново и не сохраняются.
func (r *FolderRepository) CountsByFolder() map[string]int {
	r.sc.mu.Lock()
	defer r.sc.mu.Unlock()
	return ordering.CountsByFolder(r.sc.notes, r.sc.folders)
}

// SetCurrentFolder устанавливает текущий фильтр папки.
func (r *FolderRepository) SetCurrentFolder(name string) {
	r.sc.mu.Lock()
	defer r.sc.mu.Unlock()
	r.sc.currentFolder = name
}
