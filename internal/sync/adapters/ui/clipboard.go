package ui

import (
	"fmt"

	"github.com/atotto/clipboard"

	ports "textverse/internal/sync/ports/ui"
)

// Clipboard записывает текст в системный буфер обмена.
type Clipboard struct{}

// NewClipboard создает адаптер буфера обмена.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Write помещает текст в буфер обмена.
func (c *Clipboard) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

var _ ports.Clipboard = (*Clipboard)(nil)
