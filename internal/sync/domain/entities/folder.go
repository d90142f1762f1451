package entities

// Имена двух встроенных псевдопапок. Они существуют всегда,
// их нельзя удалить или переименовать.
const (
	// AllNotes - виртуальная папка, включающая каждую активную заметку.
	// Заметка не может быть назначена в нее.
	AllNotes = "All Notes"
	// Uncategorized - папка по умолчанию; сюда попадают заметки
	// удаленных папок.
	Uncategorized = "Uncategorized"
)

// DefaultFolders возвращает начальный набор папок.
func DefaultFolders() []string {
	return []string{AllNotes, Uncategorized}
}

// IsProtectedFolder сообщает, является ли имя встроенной псевдопапкой.
func IsProtectedFolder(name string) bool {
	return name == AllNotes || name == Uncategorized
}
