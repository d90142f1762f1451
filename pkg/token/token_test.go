package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textverse/pkg/token"
)

func TestNew(t *testing.T) {
	id := token.New()
	require.Len(t, id, token.DefaultLength)

	for _, r := range id {
		isUpper := r >= 'A' && r <= 'Z'
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		assert.True(t, isUpper || isLower || isDigit, "unexpected symbol %q", r)
	}
}

func TestNewWithLength(t *testing.T) {
	assert.Len(t, token.NewWithLength(8), 8)
	assert.Len(t, token.NewWithLength(64), 64)
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := token.New()
		require.False(t, seen[id], "token collision: %s", id)
		seen[id] = true
	}
}
