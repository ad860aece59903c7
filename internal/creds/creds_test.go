package creds

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forceFileStore pins the store to file-based storage rooted in a temp
// home so tests never touch a real keyring.
func forceFileStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CI", "1")
	return NewStore(zerolog.Nop())
}

func TestEnvOverrideWins(t *testing.T) {
	s := forceFileStore(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	require.NoError(t, s.Set(TelegramToken, "stored-token"))

	got, err := s.Get(TelegramToken)
	require.NoError(t, err)
	assert.Equal(t, "env-token", got)
}

func TestSetGetDelete(t *testing.T) {
	s := forceFileStore(t)

	require.NoError(t, s.Set(GitHubToken, "ghp_abc"))

	got, err := s.Get(GitHubToken)
	require.NoError(t, err)
	assert.Equal(t, "ghp_abc", got)

	require.NoError(t, s.Delete(GitHubToken))

	got, err = s.Get(GitHubToken)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMissingCredentialIsNotAnError(t *testing.T) {
	s := forceFileStore(t)
	got, err := s.Get(TelegramToken)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmptyKeyRejected(t *testing.T) {
	s := forceFileStore(t)
	assert.Error(t, s.Set("", "x"))
	assert.Error(t, s.Delete(""))
}
