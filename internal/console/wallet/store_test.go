package wallet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofmine/proofmine-console/pkg/fs"
	"github.com/proofmine/proofmine-console/pkg/logging"
)

func newTestStore(t *testing.T) (*Store, *fs.MockFileSystem) {
	t.Helper()
	mockFS := fs.NewMockFileSystem()
	store, err := NewStore(mockFS, "/data/session.json", logging.NewNoOpLogger())
	require.NoError(t, err)
	return store, mockFS
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	session := &Session{
		WalletAddress: testWallet,
		Email:         "miner@example.com",
		Username:      "miner42",
		AuthToken:     "token-1",
		ConnectedAt:   time.Now().UTC().Truncate(time.Second),
		ExpiresAt:     time.Now().UTC().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, store.Save(session))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, session.WalletAddress, loaded.WalletAddress)
	assert.Equal(t, session.Email, loaded.Email)
	assert.Equal(t, session.AuthToken, loaded.AuthToken)
	assert.True(t, loaded.IsValid())
}

func TestStoreLoadWithoutSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	store, mockFS := newTestStore(t)
	mockFS.AddFile("/data/session.json", []byte("not json{"))

	_, err := store.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestStoreClear(t *testing.T) {
	store, _ := newTestStore(t)

	t.Run("Success: clearing an absent session is not an error", func(t *testing.T) {
		assert.NoError(t, store.Clear())
	})

	t.Run("Success: clear removes a saved session", func(t *testing.T) {
		require.NoError(t, store.Save(&Session{WalletAddress: testWallet}))
		require.NoError(t, store.Clear())

		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestStoreWritesOwnerOnlyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "session.json")
	store, err := NewStore(&fs.OSFileSystem{}, path, logging.NewNoOpLogger())
	require.NoError(t, err)

	require.NoError(t, store.Save(&Session{WalletAddress: testWallet, AuthToken: "token-1"}))

	info, err := (&fs.OSFileSystem{}).Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().String())
}
