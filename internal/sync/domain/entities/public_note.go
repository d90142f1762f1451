package entities

import "textverse/pkg/token"

// PublicNote - запись о публичном доступе к заметке: сопоставляет
// глобально уникальный publicId владельцу и идентификатору заметки.
// Создается при публикации заметки и обязана удаляться при отмене
// публикации или окончательном удалении заметки.
type PublicNote struct {
	ID       string `json:"id"`
	UID      string `json:"uid"`
	PublicID string `json:"publicId"`
}

// NewPublicNote создает запись публикации со свежим publicId.
func NewPublicNote(note *Note, uid string) *PublicNote {
	return &PublicNote{
		ID:       note.ID,
		UID:      uid,
		PublicID: token.New(),
	}
}
