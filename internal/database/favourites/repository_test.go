package favourites

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

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_favourites_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.Favourite{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func seedUserAndBook(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	user := entities.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	author := entities.Author{Name: "Ursula K. Le Guin"}
	require.NoError(t, db.Create(&author).Error)

	genre := entities.Genre{Name: "Science Fiction"}
	require.NoError(t, db.Create(&genre).Error)

	book := entities.Book{Title: "The Dispossessed", AuthorID: author.ID, GenreID: genre.ID}
	require.NoError(t, db.Create(&book).Error)

	return user.ID, book.ID
}

func TestRepository_AddFavourite(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	userID, bookID := seedUserAndBook(t, db)

	added, err := repo.AddFavourite(userID, bookID)

	require.NoError(t, err)
	assert.True(t, added)

	isFav, err := repo.IsFavourite(userID, bookID)
	require.NoError(t, err)
	assert.True(t, isFav)
}

func TestRepository_AddFavourite_Idempotent(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	userID, bookID := seedUserAndBook(t, db)

	added, err := repo.AddFavourite(userID, bookID)
	require.NoError(t, err)
	assert.True(t, added)

	// Second add is a no-op, not an error
	added, err = repo.AddFavourite(userID, bookID)
	require.NoError(t, err)
	assert.False(t, added)

	count, err := repo.GetFavouriteCount(bookID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_RemoveFavourite(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	userID, bookID := seedUserAndBook(t, db)

	_, err := repo.AddFavourite(userID, bookID)
	require.NoError(t, err)

	removed, err := repo.RemoveFavourite(userID, bookID)
	require.NoError(t, err)
	assert.True(t, removed)

	isFav, err := repo.IsFavourite(userID, bookID)
	require.NoError(t, err)
	assert.False(t, isFav)
}

func TestRepository_RemoveFavourite_AbsentIsNoOp(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	userID, bookID := seedUserAndBook(t, db)

	removed, err := repo.RemoveFavourite(userID, bookID)

	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_GetFavouriteBooks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	userID, bookID := seedUserAndBook(t, db)

	_, err := repo.AddFavourite(userID, bookID)
	require.NoError(t, err)

	books, err := repo.GetFavouriteBooks(userID)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, bookID, books[0].ID)
	assert.Equal(t, "Ursula K. Le Guin", books[0].Author.Name)
	assert.Equal(t, "Science Fiction", books[0].Genre.Name)
}

func TestRepository_GetFavouriteBooks_Empty(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	userID, _ := seedUserAndBook(t, db)

	books, err := repo.GetFavouriteBooks(userID)

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_GetFavouriteCount_MultipleUsers(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	userID, bookID := seedUserAndBook(t, db)

	other := entities.User{Username: "bob", PasswordHash: "hash"}
	require.NoError(t, db.Create(&other).Error)

	_, err := repo.AddFavourite(userID, bookID)
	require.NoError(t, err)
	_, err = repo.AddFavourite(other.ID, bookID)
	require.NoError(t, err)

	count, err := repo.GetFavouriteCount(bookID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
