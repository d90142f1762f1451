// Package entities defines the domain entities for the sync service.
package entities

import (
	"strings"
	"time"

	"textverse/pkg/token"
)

// Note представляет собой заметку пользователя.
// Содержимое Content хранится только в очищенном виде: очистку выполняет
// слой репозитория до вызова конструкторов.
type Note struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	TimeCreated time.Time     `json:"time_created"`
	LastEdited  time.Time     `json:"last_edited"`
	TimeDeleted *time.Time    `json:"time_deleted,omitempty"`
	Pinned      bool          `json:"pinned"`
	Folder      string        `json:"folder"`
	History     []NoteHistory `json:"history,omitempty"`
}

// NoteHistory - снимок заголовка и содержимого заметки на момент времени.
// Последовательность History только пополняется и никогда не усекается.
type NoteHistory struct {
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
}

// Draft содержит поля новой заметки, задаваемые пользователем.
type Draft struct {
	Title   string
	Content string
	Folder  string
}

// NewNote создает новую заметку из черновика. Идентификатор генерируется
// на стороне клиента; виртуальная папка AllNotes заменяется на Uncategorized.
func NewNote(draft Draft, now time.Time) *Note {
	folder := draft.Folder
	if folder == AllNotes || folder == "" {
		folder = Uncategorized
	}
	return &Note{
		ID:          token.New(),
		Title:       draft.Title,
		Content:     draft.Content,
		TimeCreated: now,
		LastEdited:  now,
		Pinned:      false,
		Folder:      folder,
	}
}

// NewDuplicate создает копию заметки с новым идентификатором,
// свежими временными метками и пометкой " (Copy)" в заголовке.
func NewDuplicate(src *Note, now time.Time) *Note {
	dup := src.Clone()
	dup.ID = token.New()
	dup.Title = src.Title + " (Copy)"
	dup.TimeCreated = now
	dup.LastEdited = now
	dup.TimeDeleted = nil
	dup.Pinned = false
	return dup
}

// Clone возвращает глубокую копию заметки.
func (n *Note) Clone() *Note {
	clone := *n
	if n.TimeDeleted != nil {
		deleted := *n.TimeDeleted
		clone.TimeDeleted = &deleted
	}
	if n.History != nil {
		clone.History = make([]NoteHistory, len(n.History))
		copy(clone.History, n.History)
	}
	return &clone
}

// IsEmpty сообщает, что у заметки нет ни заголовка, ни содержимого.
// Пустые заметки отбрасываются до сохранения.
func (n *Note) IsEmpty() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == ""
}

// Snapshot возвращает снимок текущего состояния заметки для истории.
func (n *Note) Snapshot() NoteHistory {
	return NoteHistory{
		Timestamp: n.LastEdited,
		Title:     n.Title,
		Content:   n.Content,
	}
}

// Patch описывает частичное обновление заметки.
// Нулевые указатели означают "поле не меняется".
type Patch struct {
	Title   *string
	Content *string
	Folder  *string
	Pinned  *bool
}

// Apply применяет частичное обновление к заметке и сообщает,
// изменились ли заголовок или содержимое.
func (p Patch) Apply(n *Note) bool {
	contentAffecting := false
	if p.Title != nil && *p.Title != n.Title {
		n.Title = *p.Title
		contentAffecting = true
	}
	if p.Content != nil && *p.Content != n.Content {
		n.Content = *p.Content
		contentAffecting = true
	}
	if p.Folder != nil {
		n.Folder = *p.Folder
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
	return contentAffecting
}
