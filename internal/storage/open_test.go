package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/harborline/internal/config"
)

func TestOpen(t *testing.T) {
	memory, err := Open(config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, memory)

	sqlite, err := Open(config.Config{Store: config.StoreConfig{
		Driver: config.DriverSQLite,
		DBPath: filepath.Join(t.TempDir(), "open.db"),
	}})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, sqlite)
	require.NoError(t, sqlite.Close())

	fs, err := Open(config.Config{Store: config.StoreConfig{Driver: config.DriverFirestore}})
	require.NoError(t, err)
	assert.IsType(t, &FirestoreBackend{}, fs)

	_, err = Open(config.Config{Store: config.StoreConfig{Driver: "mongo"}})
	assert.Error(t, err)
}
