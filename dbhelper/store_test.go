package dbhelper

import (
	"context"
	"path/filepath"
	"testing"

	"atelierapi/config"
	"atelierapi/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenStore(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want interface{}
	}{
		{name: "memory", cfg: config.Config{DBDriver: config.DriverMemory}, want: &store.MemoryStore{}},
		{name: "sqlite", cfg: config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:"}, want: &store.GormStore{}},
		{name: "sqlite cached", cfg: config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:", StoreCache: true}, want: &store.CachedStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, closeFn, err := OpenStore(&tt.cfg)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()

			assert.IsType(t, tt.want, s)

			ctx := context.Background()
			require.NoError(t, s.Save(ctx, string(store.ItemsCollection), []byte(`[]`)))
			raw, err := s.Load(ctx, string(store.ItemsCollection))
			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), raw)
		})
	}
}

func TestSetupDBUnknownDriver(t *testing.T) {
	_, err := SetupDB("oracle", "dsn")
	assert.Error(t, err)
}

func TestSetupCleaner(t *testing.T) {
	db := SetupTestDB()
	defer Close(db)
	ctx := context.Background()
	s := store.NewGormStore(db)
	require.NoError(t, s.Save(ctx, "key", []byte("value")))

	SetupCleaner(db)()

	_, err := s.Load(ctx, "key")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetupDBMigrateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atelier.db")
	raw, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	// a view occupying the table name makes the migration fail
	require.NoError(t, raw.Exec("CREATE VIEW kv_records AS SELECT 'k' AS record_key").Error)
	require.NoError(t, Close(raw))

	db, err := SetupDB(config.DriverSQLite, path)
	assert.Error(t, err)
	assert.Nil(t, db)
}
