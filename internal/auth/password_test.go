package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "expected a cost-12 bcrypt hash, got %s", hash)

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)

	// Per-call salt: identical inputs never share a digest.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same-input", first))
	assert.True(t, CheckPassword("same-input", second))
}

func TestHashPasswordTooLong(t *testing.T) {
	// bcrypt rejects inputs over 72 bytes rather than silently truncating.
	_, err := HashPassword(strings.Repeat("x", 100))
	assert.Error(t, err)
}
