// Package ordering реализует чистый движок упорядочивания заметок:
// порядок отображения и счетчики папок всегда выводятся заново
// из набора сущностей и никогда не сохраняются.
package ordering

import (
	"sort"
	"strings"

	"textverse/internal/sync/domain/entities"
)

// SortType определяет порядок сортировки незакрепленных заметок.
type SortType string

// Поддерживаемые порядки сортировки.
const (
	// SortByDate - по убыванию last_edited.
	SortByDate SortType = "date"
	// SortByTitle - по возрастанию заголовка.
	SortByTitle SortType = "title"
)

// Reorder возвращает заметки в порядке отображения: сначала закрепленные,
// затем остальные. Закрепленные сохраняют исходный взаимный порядок
// (порядок закрепления), незакрепленные сортируются согласно sortType.
func Reorder(notes []*entities.Note, sortType SortType) []*entities.Note {
	pinned := make([]*entities.Note, 0, len(notes))
	unpinned := make([]*entities.Note, 0, len(notes))
	for _, note := range notes {
		if note.Pinned {
			pinned = append(pinned, note)
		} else {
			unpinned = append(unpinned, note)
		}
	}

	sort.SliceStable(unpinned, func(i, j int) bool {
		if sortType == SortByTitle {
			return unpinned[i].Title < unpinned[j].Title
		}
		return unpinned[i].LastEdited.After(unpinned[j].LastEdited)
	})

	return append(pinned, unpinned...)
}

// Filter возвращает заметки, подходящие под поисковый запрос и папку.
// Поиск не учитывает регистр и проверяет вхождение в заголовок или
// содержимое; фильтр по папке AllNotes пропускает все заметки.
func Filter(notes []*entities.Note, query, folder string) []*entities.Note {
	lowered := strings.ToLower(query)
	matched := make([]*entities.Note, 0, len(notes))
	for _, note := range notes {
		if folder != entities.AllNotes && note.Folder != folder {
			continue
		}
		if lowered != "" &&
			!strings.Contains(strings.ToLower(note.Title), lowered) &&
			!strings.Contains(strings.ToLower(note.Content), lowered) {
			continue
		}
		matched = append(matched, note)
	}
	return matched
}

// CountsByFolder возвращает число заметок в каждой известной папке.
// AllNotes безусловно считает все активные заметки.
func CountsByFolder(notes []*entities.Note, folders []string) map[string]int {
	counts := make(map[string]int, len(folders))
	for _, folder := range folders {
		if folder == entities.AllNotes {
			counts[folder] = len(notes)
			continue
		}
		total := 0
		for _, note := range notes {
			if note.Folder == folder {
				total++
			}
		}
		counts[folder] = total
	}
	return counts
}
