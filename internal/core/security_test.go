// AngelaMos | 2026
// security_test.go

package core

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	valid, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	valid, err := VerifyPasswordTimingSafe("secret123", &hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPasswordTimingSafe("wrong", &hash)
	require.NoError(t, err)
	assert.False(t, valid)

	// No stored hash: must still return false without error.
	valid, err = VerifyPasswordTimingSafe("secret123", nil)
	require.NoError(t, err)
	assert.False(t, valid)

	empty := ""
	valid, err = VerifyPasswordTimingSafe("secret123", &empty)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestGenerateResetCode(t *testing.T) {
	seen := make(map[string]bool)

	for range 50 {
		code, err := GenerateResetCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)

		seen[code] = true
	}

	// 50 draws from 900k values colliding down to a handful would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 40)
}
