package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"textverse/internal/sync/domain/entities"
	"textverse/internal/sync/domain/ordering"
	"textverse/internal/sync/ports/identity"
	"textverse/internal/sync/ports/storage"
)

// fakeBackend - хранилище в памяти с точечным внедрением сбоев по
// имени операции.
type fakeBackend struct {
	mu      sync.Mutex
	notes   map[string]map[string]*entities.Note
	trash   map[string]map[string]*entities.Note
	folders map[string][]string
	public  map[string]*entities.PublicNote

	fail map[string]error

	// onSaveNote выполняется перед записью, вне мьютекса хранилища;
	// имитирует действия другого клиента в окне записи.
	onSaveNote func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		notes:   make(map[string]map[string]*entities.Note),
		trash:   make(map[string]map[string]*entities.Note),
		folders: make(map[string][]string),
		public:  make(map[string]*entities.PublicNote),
		fail:    make(map[string]error),
	}
}

func (b *fakeBackend) failOn(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[op] = err
}

func (b *fakeBackend) failure(op string) error {
	return b.fail[op]
}

func (b *fakeBackend) space(space map[string]map[string]*entities.Note, uid string) map[string]*entities.Note {
	if space[uid] == nil {
		space[uid] = make(map[string]*entities.Note)
	}
	return space[uid]
}

func (b *fakeBackend) Note(_ context.Context, uid, noteID string) (*entities.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("Note"); err != nil {
		return nil, err
	}
	return b.space(b.notes, uid)[noteID], nil
}

func (b *fakeBackend) Notes(_ context.Context, uid string) (map[string]*entities.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("Notes"); err != nil {
		return nil, err
	}
	out := make(map[string]*entities.Note, len(b.space(b.notes, uid)))
	for id, note := range b.space(b.notes, uid) {
		out[id] = note.Clone()
	}
	return out, nil
}

func (b *fakeBackend) SaveNote(_ context.Context, uid string, note *entities.Note) error {
	if b.onSaveNote != nil {
		b.onSaveNote()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("SaveNote"); err != nil {
		return err
	}
	b.space(b.notes, uid)[note.ID] = note.Clone()
	return nil
}

func (b *fakeBackend) SaveNotes(_ context.Context, uid string, notes []*entities.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("SaveNotes"); err != nil {
		return err
	}
	for _, note := range notes {
		b.space(b.notes, uid)[note.ID] = note.Clone()
	}
	return nil
}

func (b *fakeBackend) DeleteNote(_ context.Context, uid, noteID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("DeleteNote"); err != nil {
		return err
	}
	delete(b.space(b.notes, uid), noteID)
	return nil
}

func (b *fakeBackend) TrashedNotes(_ context.Context, uid string) (map[string]*entities.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("TrashedNotes"); err != nil {
		return nil, err
	}
	out := make(map[string]*entities.Note, len(b.space(b.trash, uid)))
	for id, note := range b.space(b.trash, uid) {
		out[id] = note.Clone()
	}
	return out, nil
}

func (b *fakeBackend) SaveTrashed(_ context.Context, uid string, note *entities.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("SaveTrashed"); err != nil {
		return err
	}
	b.space(b.trash, uid)[note.ID] = note.Clone()
	return nil
}

func (b *fakeBackend) DeleteTrashed(_ context.Context, uid, noteID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("DeleteTrashed"); err != nil {
		return err
	}
	delete(b.space(b.trash, uid), noteID)
	return nil
}

func (b *fakeBackend) EmptyTrash(_ context.Context, uid string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("EmptyTrash"); err != nil {
		return err
	}
	delete(b.trash, uid)
	return nil
}

func (b *fakeBackend) Folders(_ context.Context, uid string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("Folders"); err != nil {
		return nil, err
	}
	return b.folders[uid], nil
}

func (b *fakeBackend) SaveFolders(_ context.Context, uid string, folders []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("SaveFolders"); err != nil {
		return err
	}
	stored := make([]string, len(folders))
	copy(stored, folders)
	b.folders[uid] = stored
	return nil
}

func (b *fakeBackend) PublicNote(_ context.Context, publicID string) (*entities.PublicNote, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("PublicNote"); err != nil {
		return nil, err
	}
	return b.public[publicID], nil
}

func (b *fakeBackend) PublicNotes(_ context.Context) (map[string]*entities.PublicNote, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("PublicNotes"); err != nil {
		return nil, err
	}
	out := make(map[string]*entities.PublicNote, len(b.public))
	for id, record := range b.public {
		out[id] = record
	}
	return out, nil
}

func (b *fakeBackend) SavePublicNote(_ context.Context, publicNote *entities.PublicNote) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("SavePublicNote"); err != nil {
		return err
	}
	b.public[publicNote.PublicID] = publicNote
	return nil
}

func (b *fakeBackend) DeletePublicNote(_ context.Context, publicID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("DeletePublicNote"); err != nil {
		return err
	}
	delete(b.public, publicID)
	return nil
}

func (b *fakeBackend) ClearAll(_ context.Context, uid string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failure("ClearAll"); err != nil {
		return err
	}
	delete(b.notes, uid)
	delete(b.trash, uid)
	delete(b.folders, uid)
	return nil
}

var _ storage.Backend = (*fakeBackend)(nil)

// watchableBackend дополняет fakeBackend способностью Watcher.
type watchableBackend struct {
	*fakeBackend

	watchErr error
	watchMu  sync.Mutex
	onChange func()
	unsubbed int
}

func newWatchableBackend() *watchableBackend {
	return &watchableBackend{fakeBackend: newFakeBackend()}
}

func (b *watchableBackend) WatchNotes(_ context.Context, _ string, onChange func()) (storage.Unsubscribe, error) {
	if b.watchErr != nil {
		return nil, b.watchErr
	}
	b.watchMu.Lock()
	b.onChange = onChange
	b.watchMu.Unlock()
	return func() error {
		b.watchMu.Lock()
		defer b.watchMu.Unlock()
		b.onChange = nil
		b.unsubbed++
		return nil
	}, nil
}

// push имитирует уведомление об изменении от другого клиента.
func (b *watchableBackend) push() {
	b.watchMu.Lock()
	onChange := b.onChange
	b.watchMu.Unlock()
	if onChange != nil {
		onChange()
	}
}

var _ storage.Watcher = (*watchableBackend)(nil)

// fakeIdentity возвращает заранее заданного пользователя или ошибку.
type fakeIdentity struct {
	user *identity.User
	err  error
}

func (p *fakeIdentity) CurrentUser(context.Context) (*identity.User, error) {
	return p.user, p.err
}

// stubSanitizer обрезает пробелы и вырезает маркер "<script>",
// фиксируя каждый вызов.
type stubSanitizer struct {
	calls []string
}

func (s *stubSanitizer) Sanitize(content string) string {
	s.calls = append(s.calls, content)
	return strings.TrimSpace(strings.ReplaceAll(content, "<script>", ""))
}

// recordingNotifier накапливает доставленные сообщения.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

// fakeClipboard накапливает записанный текст.
type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

const (
	testOrigin = "https://textverse.app"
	remoteUID  = "user-1"
)

// fixture собирает контекст синхронизации с локальным и удаленным
// хранилищами в памяти и детерминированными часами.
type fixture struct {
	sc        *SyncContext
	notes     *NoteRepository
	folders   *FolderRepository
	listener  *Listener
	local     *fakeBackend
	remote    *watchableBackend
	identity  *fakeIdentity
	notifier  *recordingNotifier
	clipboard *fakeClipboard
	sanitizer *stubSanitizer
	clock     *fakeClock
}

// fakeClock выдает строго возрастающие метки времени с шагом в секунду.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(time.Second)
	return c.current
}

func newFixture() *fixture {
	f := &fixture{
		local:     newFakeBackend(),
		remote:    newWatchableBackend(),
		identity:  &fakeIdentity{},
		notifier:  &recordingNotifier{},
		clipboard: &fakeClipboard{},
		sanitizer: &stubSanitizer{},
		clock:     newFakeClock(),
	}
	f.sc = NewSyncContext(f.identity, f.local, f.remote, testOrigin, ordering.SortByDate)
	f.notes = NewNoteRepository(f.sc, f.sanitizer, f.clipboard, f.notifier)
	f.notes.now = f.clock.Now
	f.folders = NewFolderRepository(f.sc, f.notifier)
	f.listener = NewListener(f.sc)
	return f
}

// signIn переключает фикстуру в аутентифицированный режим.
func (f *fixture) signIn() {
	f.identity.user = &identity.User{UID: remoteUID}
}
