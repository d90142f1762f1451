package ordering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textverse/internal/sync/domain/entities"
	"textverse/internal/sync/domain/ordering"
)

func note(id, title, folder string, pinned bool, edited time.Time) *entities.Note {
	return &entities.Note{
		ID:         id,
		Title:      title,
		Content:    "content of " + title,
		Folder:     folder,
		Pinned:     pinned,
		LastEdited: edited,
	}
}

func ids(notes []*entities.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestReorder_PinnedFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	notes := []*entities.Note{
		note("a", "alpha", "Work", false, base.Add(3*time.Hour)),
		note("b", "beta", "Work", true, base.Add(time.Hour)),
		note("c", "gamma", "Work", true, base.Add(2*time.Hour)),
		note("d", "delta", "Work", false, base.Add(4*time.Hour)),
	}

	ordered := ordering.Reorder(notes, ordering.SortByDate)

	// Закрепленные идут первыми в порядке закрепления, независимо от дат.
	require.Equal(t, []string{"b", "c", "d", "a"}, ids(ordered))
}

func TestReorder_SortByDate(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	notes := []*entities.Note{
		note("old", "old", "Work", false, base),
		note("new", "new", "Work", false, base.Add(2*time.Hour)),
		note("mid", "mid", "Work", false, base.Add(time.Hour)),
	}

	ordered := ordering.Reorder(notes, ordering.SortByDate)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(ordered))
}

func TestReorder_SortByTitle(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	notes := []*entities.Note{
		note("c", "cherry", "Work", false, base.Add(time.Hour)),
		note("a", "apple", "Work", false, base),
		note("b", "banana", "Work", false, base.Add(2*time.Hour)),
	}

	ordered := ordering.Reorder(notes, ordering.SortByTitle)
	assert.Equal(t, []string{"a", "b", "c"}, ids(ordered))
}

func TestReorder_StableForEqualKeys(t *testing.T) {
	edited := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	notes := []*entities.Note{
		note("first", "same", "Work", false, edited),
		note("second", "same", "Work", false, edited),
		note("third", "same", "Work", false, edited),
	}

	assert.Equal(t, []string{"first", "second", "third"}, ids(ordering.Reorder(notes, ordering.SortByDate)))
	assert.Equal(t, []string{"first", "second", "third"}, ids(ordering.Reorder(notes, ordering.SortByTitle)))
}

func TestFilter(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	notes := []*entities.Note{
		note("a", "Shopping list", "Home", false, base),
		note("b", "Meeting notes", "Work", false, base),
		note("c", "Travel plans", "Home", false, base),
	}

	tests := []struct {
		name   string
		query  string
		folder string
		want   []string
	}{
		{name: "all notes no query", query: "", folder: entities.AllNotes, want: []string{"a", "b", "c"}},
		{name: "folder filter", query: "", folder: "Home", want: []string{"a", "c"}},
		{name: "query is case-insensitive", query: "MEETING", folder: entities.AllNotes, want: []string{"b"}},
		{name: "query matches content", query: "content of travel", folder: entities.AllNotes, want: []string{"c"}},
		{name: "query and folder combined", query: "plans", folder: "Work", want: []string{}},
		{name: "no match", query: "nothing here", folder: entities.AllNotes, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ordering.Filter(notes, tt.query, tt.folder)))
		})
	}
}

func TestCountsByFolder(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	notes := []*entities.Note{
		note("a", "a", "Home", false, base),
		note("b", "b", "Home", false, base),
		note("c", "c", entities.Uncategorized, false, base),
	}
	folders := []string{entities.AllNotes, entities.Uncategorized, "Home", "Empty"}

	counts := ordering.CountsByFolder(notes, folders)

	assert.Equal(t, map[string]int{
		entities.AllNotes:      3,
		entities.Uncategorized: 1,
		"Home":                 2,
		"Empty":                0,
	}, counts)
}
