package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

// Accounts synthesized by the public submission flow carry '!' as their
// stored password. It is not a bcrypt hash, so no input can ever match.
func TestPlaceholderPasswordNeverVerifies(t *testing.T) {
	assert.False(t, CheckPasswordHash("", "!"))
	assert.False(t, CheckPasswordHash("!", "!"))
	assert.False(t, CheckPasswordHash("password", "!"))
}
