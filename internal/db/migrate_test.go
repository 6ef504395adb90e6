package db

import (
	"testing"
	"testing/fstest"

	"erp-admin/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_options.sql": {Data: []byte("CREATE TABLE b();")},
		"001_init.sql":    {Data: []byte("CREATE TABLE a();")},
		"README.md":       {Data: []byte("ignored")},
	}
	got, err := DiscoverMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "001", got[0].Version)
	assert.Equal(t, "001_init.sql", got[0].Filename)
	assert.Equal(t, "002", got[1].Version)
	assert.Len(t, got[0].Checksum, 64)
	assert.NotEqual(t, got[0].Checksum, got[1].Checksum)
}

func TestDiscoverMigrations_Rejects(t *testing.T) {
	_, err := DiscoverMigrations(fstest.MapFS{
		"001_a.sql": {Data: []byte("x")},
		"001_b.sql": {Data: []byte("y")},
	})
	assert.ErrorContains(t, err, "version 001 already used")

	_, err = DiscoverMigrations(fstest.MapFS{"init.sql": {Data: []byte("x")}})
	assert.ErrorContains(t, err, "expected NNN_description.sql")
}

func TestEmbeddedMigrationsAreWellFormed(t *testing.T) {
	got, err := DiscoverMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "001_init.sql", got[0].Filename)
}
