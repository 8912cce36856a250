package client_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/limbo/moodtrack/internal/client"
	errorvalues "github.com/limbo/moodtrack/internal/error_values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSessionStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	store := client.NewFileSessionStore(dir)

	_, err := store.Load()
	assert.ErrorIs(t, err, errorvalues.ErrAuthRequired)

	s := &client.Session{UserID: uuid.New(), Email: "ann@example.com", Token: "tok"}
	require.NoError(t, store.Save(s))

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(filepath.Join(dir, "session.json.tmp"))
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, errorvalues.ErrAuthRequired)
}

func TestFileSessionStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	_, err := client.NewFileSessionStore(dir).Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errorvalues.ErrAuthRequired)
}

func TestHomeDirFromEnv(t *testing.T) {
	t.Setenv("MOODTRACK_HOME", "/tmp/moodtrack-test")
	dir, err := client.HomeDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/moodtrack-test", dir)
}
