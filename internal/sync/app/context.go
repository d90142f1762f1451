// Package app implements the dual-backend note and folder
// synchronization layer.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"textverse/internal/sync/domain/entities"
	"textverse/internal/sync/domain/ordering"
	"textverse/internal/sync/ports/identity"
	"textverse/internal/sync/ports/storage"
	"textverse/pkg/logger"
)

// localUID - фиксированный идентификатор анонимного локального профиля.
const localUID = "local"

// SyncContext владеет выбором хранилища и рабочим набором в памяти:
// активные заметки в порядке отображения, корзина, папки и карта
// публикаций. Изменять коллекции можно только через репозитории,
// чтобы сохранялись инварианты очистки, временных меток и порядка.
type SyncContext struct {
	identity identity.Provider
	local    storage.Backend
	remote   storage.Backend
	origin   string

	mu            sync.Mutex
	notes         []*entities.Note
	trash         []*entities.Note
	folders       []string
	public        map[string]string // note id -> public id
	searchQuery   string
	currentFolder string
	sortType      ordering.SortType
}

// NewSyncContext создает контекст синхронизации.
func NewSyncContext(provider identity.Provider, local, remote storage.Backend, origin string, sortType ordering.SortType) *SyncContext {
	return &SyncContext{
		identity:      provider,
		local:         local,
		remote:        remote,
		origin:        origin,
		public:        make(map[string]string),
		folders:       entities.DefaultFolders(),
		currentFolder: entities.AllNotes,
		sortType:      sortType,
	}
}

// session - результат выбора хранилища для одного логического действия.
// Внутри действия чтение и запись идут только в это хранилище.
type session struct {
	backend  storage.Backend
	uid      string
	loggedIn bool
}

// currentSession выбирает хранилище по состоянию провайдера идентификации.
// Решение чисто маршрутизирующее, без побочных эффектов; ошибка проверки
// сессии трактуется как анонимный режим.
func (sc *SyncContext) currentSession(ctx context.Context) session {
	user, err := sc.identity.CurrentUser(ctx)
	if err != nil {
		logger.Log(ctx).Warn(ctx, "session check failed, falling back to local store", zap.Error(err))
		return session{backend: sc.local, uid: localUID}
	}
	if user == nil {
		return session{backend: sc.local, uid: localUID}
	}
	return session{backend: sc.remote, uid: user.UID, loggedIn: true}
}

// reorderLocked пересчитывает порядок отображения. Вызывается после
// каждого изменения, влияющего на порядок или состав набора.
func (sc *SyncContext) reorderLocked() {
	sc.notes = ordering.Reorder(sc.notes, sc.sortType)
}

// noteLocked возвращает активную заметку и ее позицию или (-1, nil).
func (sc *SyncContext) noteLocked(noteID string) (int, *entities.Note) {
	for i, note := range sc.notes {
		if note.ID == noteID {
			return i, note
		}
	}
	return -1, nil
}

// trashedLocked возвращает заметку из корзины и ее позицию или (-1, nil).
func (sc *SyncContext) trashedLocked(noteID string) (int, *entities.Note) {
	for i, note := range sc.trash {
		if note.ID == noteID {
			return i, note
		}
	}
	return -1, nil
}

// installNote замещает заметку в рабочем наборе результатом записи.
// Конкурентный push мог заместить набор целиком между записью и
// установкой; если заметки больше нет, push побеждает и результат
// в память не устанавливается.
func (sc *SyncContext) installNote(updated *entities.Note) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if i, existing := sc.noteLocked(updated.ID); existing != nil {
		sc.notes[i] = updated
		sc.reorderLocked()
	}
}

// snapshot - копия рабочего набора для отката оптимистичных изменений.
type snapshot struct {
	notes         []*entities.Note
	trash         []*entities.Note
	folders       []string
	public        map[string]string
	currentFolder string
}

func (sc *SyncContext) snapshotLocked() snapshot {
	snap := snapshot{
		notes:         make([]*entities.Note, len(sc.notes)),
		trash:         make([]*entities.Note, len(sc.trash)),
		folders:       make([]string, len(sc.folders)),
		public:        make(map[string]string, len(sc.public)),
		currentFolder: sc.currentFolder,
	}
	copy(snap.notes, sc.notes)
	copy(snap.trash, sc.trash)
	copy(snap.folders, sc.folders)
	for id, publicID := range sc.public {
		snap.public[id] = publicID
	}
	return snap
}

func (sc *SyncContext) restoreLocked(snap snapshot) {
	sc.notes = snap.notes
	sc.trash = snap.trash
	sc.folders = snap.folders
	sc.public = snap.public
	sc.currentFolder = snap.currentFolder
}

// Notes возвращает активные заметки в порядке отображения.
func (sc *SyncContext) Notes() []*entities.Note {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	notes := make([]*entities.Note, len(sc.notes))
	copy(notes, sc.notes)
	return notes
}

// TrashedNotes возвращает содержимое корзины.
func (sc *SyncContext) TrashedNotes() []*entities.Note {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	trash := make([]*entities.Note, len(sc.trash))
	copy(trash, sc.trash)
	return trash
}

// Folders возвращает известные папки.
func (sc *SyncContext) Folders() []string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	folders := make([]string, len(sc.folders))
	copy(folders, sc.folders)
	return folders
}

// CurrentFolder возвращает текущий фильтр папки.
func (sc *SyncContext) CurrentFolder() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.currentFolder
}

// SearchQuery возвращает текущий поисковый запрос.
func (sc *SyncContext) SearchQuery() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.searchQuery
}

// SetSearchQuery устанавливает поисковый запрос.
func (sc *SyncContext) SetSearchQuery(query string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.searchQuery = query
}

// SortType возвращает текущий порядок сортировки.
func (sc *SyncContext) SortType() ordering.SortType {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sortType
}

// SetSortType устанавливает порядок сортировки и пересчитывает порядок.
func (sc *SyncContext) SetSortType(sortType ordering.SortType) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.sortType = sortType
	sc.reorderLocked()
}

// PublicID возвращает publicId заметки, если она опубликована.
func (sc *SyncContext) PublicID(noteID string) (string, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	publicID, ok := sc.public[noteID]
	return publicID, ok
}

// VisibleNotes возвращает заметки текущей папки, подходящие под поиск,
// в порядке отображения.
func (sc *SyncContext) VisibleNotes() []*entities.Note {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return ordering.Filter(sc.notes, sc.searchQuery, sc.currentFolder)
}
