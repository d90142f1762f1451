package app

import "errors"

// Ошибки уровня бизнес-логики. Операции над отсутствующими сущностями
// не фатальны: состояние остается неизменным, вызывающая сторона
// получает сигнал и может продолжать работу.
var (
	ErrNotFound        = errors.New("note not found")
	ErrVersionNotFound = errors.New("history version not found")
	ErrFolderNotFound  = errors.New("folder not found")
	ErrFolderExists    = errors.New("folder already exists")
	ErrProtectedFolder = errors.New("default folders cannot be modified")
	ErrVirtualFolder   = errors.New("notes cannot be assigned to the All Notes folder")
	ErrEmptyNote       = errors.New("empty note discarded")
	ErrInvalidImport   = errors.New("invalid import payload")
	ErrSignInRequired  = errors.New("sharing requires a signed-in user")
)

// StorageError - сбой ввода-вывода хранилища. Оптимистичные изменения
// в памяти откатываются до последнего подтвержденного состояния;
// вызывающая сторона может повторить операцию.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// SyncError - сбой подписки на удаленные изменения. Слушатель
// считается отсоединенным, процесс продолжает работу.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return "sync " + e.Op + ": " + e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func syncErr(op string, err error) error {
	return &SyncError{Op: op, Err: err}
}
