package genres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_genres_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Genre{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateGenre(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	genre, err := repo.CreateGenre("Science Fiction")

	require.NoError(t, err)
	assert.NotZero(t, genre.ID)
	assert.Equal(t, "Science Fiction", genre.Name)
}

func TestRepository_GetGenreByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateGenre("Science Fiction")
	require.NoError(t, err)

	genre, err := repo.GetGenreByID(created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, genre.ID)
}

func TestRepository_GetGenreByName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateGenre("Science Fiction")
	require.NoError(t, err)

	genre, err := repo.GetGenreByName("Science Fiction")
	require.NoError(t, err)
	assert.Equal(t, created.ID, genre.ID)

	_, err = repo.GetGenreByName("No Such Genre")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetGenreByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetGenreByID(999)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetAllGenres_SortedByName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateGenre("Science Fiction")
	require.NoError(t, err)
	_, err = repo.CreateGenre("Philosophy")
	require.NoError(t, err)

	genres, err := repo.GetAllGenres()

	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Philosophy", genres[0].Name)
	assert.Equal(t, "Science Fiction", genres[1].Name)
}
