package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textverse/internal/sync/domain/entities"
)

func TestNewNote(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		folder     string
		wantFolder string
	}{
		{name: "explicit folder", folder: "Work", wantFolder: "Work"},
		{name: "empty folder", folder: "", wantFolder: entities.Uncategorized},
		{name: "virtual folder", folder: entities.AllNotes, wantFolder: entities.Uncategorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := entities.NewNote(entities.Draft{
				Title:   "title",
				Content: "content",
				Folder:  tt.folder,
			}, now)

			assert.Len(t, note.ID, 22)
			assert.Equal(t, tt.wantFolder, note.Folder)
			assert.Equal(t, now, note.TimeCreated)
			assert.Equal(t, now, note.LastEdited)
			assert.False(t, note.Pinned)
			assert.Nil(t, note.TimeDeleted)
			assert.Empty(t, note.History)
		})
	}
}

func TestNewDuplicate(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	src := entities.NewNote(entities.Draft{Title: "Plan", Content: "body", Folder: "Work"}, created)
	src.Pinned = true
	src.History = []entities.NoteHistory{{Timestamp: created, Title: "Plan", Content: "old"}}

	dup := entities.NewDuplicate(src, now)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Plan (Copy)", dup.Title)
	assert.Equal(t, src.Content, dup.Content)
	assert.Equal(t, src.Folder, dup.Folder)
	assert.Equal(t, now, dup.TimeCreated)
	assert.Equal(t, now, dup.LastEdited)
	assert.False(t, dup.Pinned)
	assert.Equal(t, src.History, dup.History)
}

func TestNoteClone(t *testing.T) {
	deleted := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	src := &entities.Note{
		ID:          "abc",
		Title:       "title",
		Content:     "content",
		TimeDeleted: &deleted,
		History:     []entities.NoteHistory{{Title: "v1"}},
	}

	clone := src.Clone()
	require.Equal(t, src, clone)

	// Копия должна быть глубокой: изменения не затрагивают оригинал.
	*clone.TimeDeleted = deleted.Add(time.Hour)
	clone.History[0].Title = "v2"

	assert.Equal(t, deleted, *src.TimeDeleted)
	assert.Equal(t, "v1", src.History[0].Title)
}

func TestNoteIsEmpty(t *testing.T) {
	assert.True(t, (&entities.Note{}).IsEmpty())
	assert.True(t, (&entities.Note{Title: "  ", Content: "\n\t"}).IsEmpty())
	assert.False(t, (&entities.Note{Title: "title"}).IsEmpty())
	assert.False(t, (&entities.Note{Content: "content"}).IsEmpty())
}

func TestPatchApply(t *testing.T) {
	strptr := func(s string) *string { return &s }
	boolptr := func(b bool) *bool { return &b }

	tests := []struct {
		name        string
		patch       entities.Patch
		wantChanged bool
	}{
		{
			name:        "title change",
			patch:       entities.Patch{Title: strptr("new title")},
			wantChanged: true,
		},
		{
			name:        "content change",
			patch:       entities.Patch{Content: strptr("new content")},
			wantChanged: true,
		},
		{
			name:        "same title is not a change",
			patch:       entities.Patch{Title: strptr("title")},
			wantChanged: false,
		},
		{
			name:        "folder only",
			patch:       entities.Patch{Folder: strptr("Work")},
			wantChanged: false,
		},
		{
			name:        "pin only",
			patch:       entities.Patch{Pinned: boolptr(true)},
			wantChanged: false,
		},
		{
			name:        "empty patch",
			patch:       entities.Patch{},
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := &entities.Note{Title: "title", Content: "content", Folder: entities.Uncategorized}
			assert.Equal(t, tt.wantChanged, tt.patch.Apply(note))
		})
	}
}

func TestDefaultFolders(t *testing.T) {
	folders := entities.DefaultFolders()
	require.Equal(t, []string{entities.AllNotes, entities.Uncategorized}, folders)

	assert.True(t, entities.IsProtectedFolder(entities.AllNotes))
	assert.True(t, entities.IsProtectedFolder(entities.Uncategorized))
	assert.False(t, entities.IsProtectedFolder("Work"))
}
