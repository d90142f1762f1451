// Package ui содержит адаптеры внешних коллабораторов интерфейса:
// очистку содержимого, буфер обмена и пользовательские уведомления.
package ui

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	ports "textverse/internal/sync/ports/ui"
)

var (
	brPattern      = regexp.MustCompile(`(?i)<br\s*/?>`)
	headingPattern = regexp.MustCompile(`(?i)</h[1-6]>`)
)

// Sanitizer приводит насыщенный текст к безопасному плоскому виду:
// переносы строк сохраняются для <br> и заголовков, разметка удаляется.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer создает очиститель содержимого.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize возвращает очищенное содержимое.
func (s *Sanitizer) Sanitize(content string) string {
	withBreaks := brPattern.ReplaceAllString(content, "\n")
	withBreaks = headingPattern.ReplaceAllString(withBreaks, "\n")
	stripped := s.policy.Sanitize(withBreaks)
	return strings.TrimSpace(html.UnescapeString(stripped))
}

var _ ports.Sanitizer = (*Sanitizer)(nil)
