package store

import (
	"path/filepath"
	"testing"

	"cybertech/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestKV(t *testing.T) *storage.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	return storage.New(db)
}

func newTestStores(t *testing.T) (*IdentityStore, *CatalogStore) {
	t.Helper()

	kv := newTestKV(t)
	identity := NewIdentityStore(kv)
	catalog := NewCatalogStore(kv)
	require.NoError(t, identity.EnsureAdmin())
	require.NoError(t, catalog.EnsureCatalog())
	return identity, catalog
}
