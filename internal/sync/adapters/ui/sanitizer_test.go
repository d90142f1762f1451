package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"textverse/internal/sync/adapters/ui"
)

func TestSanitizer(t *testing.T) {
	sanitizer := ui.NewSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "plain text",
			want:  "plain text",
		},
		{
			name:  "tags stripped",
			input: "<b>bold</b> and <i>italic</i>",
			want:  "bold and italic",
		},
		{
			name:  "script removed",
			input: `hello<script>alert("xss")</script> world`,
			want:  "hello world",
		},
		{
			name:  "br becomes newline",
			input: "first<br>second<br/>third",
			want:  "first\nsecond\nthird",
		},
		{
			name:  "heading close becomes newline",
			input: "<h1>Title</h1>body",
			want:  "Title\nbody",
		},
		{
			name:  "entities unescaped",
			input: "a &amp; b",
			want:  "a & b",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  <p>text</p>  ",
			want:  "text",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizer.Sanitize(tt.input))
		})
	}
}
