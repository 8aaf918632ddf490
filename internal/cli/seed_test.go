package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func countRows(t *testing.T, db *database.Database, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(model).Count(&count).Error)
	return count
}

func TestSeedCommand_Run(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed_test.db")

	cmd := &SeedCommand{
		DatabasePath: dbPath,
		Username:     "demo",
		Password:     "demopassword",
	}
	require.NoError(t, cmd.Run())

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, int64(6), countRows(t, db, &entities.Book{}))
	assert.Equal(t, int64(4), countRows(t, db, &entities.Author{}))
	assert.Equal(t, int64(3), countRows(t, db, &entities.Genre{}))
	assert.Equal(t, int64(1), countRows(t, db, &entities.User{}))
}

func TestSeedCommand_RunTwiceDoesNotDuplicate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed_test.db")

	for i := 0; i < 2; i++ {
		cmd := &SeedCommand{
			DatabasePath: dbPath,
			Username:     "demo",
			Password:     "demopassword",
		}
		require.NoError(t, cmd.Run())
	}

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, int64(6), countRows(t, db, &entities.Book{}))
	assert.Equal(t, int64(4), countRows(t, db, &entities.Author{}))
	assert.Equal(t, int64(3), countRows(t, db, &entities.Genre{}))
	assert.Equal(t, int64(1), countRows(t, db, &entities.User{}))
}
