package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMigratesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "garden.db"))
	require.NoError(t, err)
	defer Close(db)

	assert.True(t, db.Migrator().HasTable("plants"))
	assert.True(t, db.Migrator().HasTable("tasks"))
	assert.True(t, db.Migrator().HasColumn("plants", "care_watering_needs"))
	assert.True(t, db.Migrator().HasColumn("plants", "container_material"))
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garden.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, Close(db))
	}
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
