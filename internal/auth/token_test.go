package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, time.Hour, 42, "ada@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), ident.UserID)
	assert.Equal(t, "ada@x.com", ident.Email)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, time.Hour, 1, "a@b.com")
	require.NoError(t, err)

	_, err = ParseToken("some-other-secret", token)
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueToken(testSecret, -time.Minute, 1, "a@b.com")
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "definitely.not.a.jwt")
	require.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash, "plaintext must never be stored")

	assert.True(t, CheckPassword(hash, "pw123"))
	assert.False(t, CheckPassword(hash, "pw124"))
}

func TestIsBcryptHash(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	assert.True(t, IsBcryptHash(hash))
	assert.False(t, IsBcryptHash("pw"))
	assert.False(t, IsBcryptHash("$1$legacy"))
}
