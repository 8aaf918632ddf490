package books

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
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Author{}, &entities.Genre{}, &entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func seedAuthorAndGenre(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	author := entities.Author{Name: "Ursula K. Le Guin"}
	require.NoError(t, db.Create(&author).Error)

	genre := entities.Genre{Name: "Science Fiction"}
	require.NoError(t, db.Create(&genre).Error)

	return author.ID, genre.ID
}

func TestRepository_CreateBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	authorID, genreID := seedAuthorAndGenre(t, db)

	book, err := repo.CreateBook("The Left Hand of Darkness", authorID, genreID)

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "The Left Hand of Darkness", book.Title)
	assert.Equal(t, authorID, book.AuthorID)
	assert.Equal(t, genreID, book.GenreID)
}

func TestRepository_GetBookByID_PreloadsAssociations(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	authorID, genreID := seedAuthorAndGenre(t, db)

	created, err := repo.CreateBook("The Left Hand of Darkness", authorID, genreID)
	require.NoError(t, err)

	book, err := repo.GetBookByID(created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", book.Author.Name)
	assert.Equal(t, "Science Fiction", book.Genre.Name)
}

func TestRepository_GetBookByTitle(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	authorID, genreID := seedAuthorAndGenre(t, db)
	created, err := repo.CreateBook("The Dispossessed", authorID, genreID)
	require.NoError(t, err)

	book, err := repo.GetBookByTitle("The Dispossessed")
	require.NoError(t, err)
	assert.Equal(t, created.ID, book.ID)
	assert.NotEmpty(t, book.Author.Name)

	_, err = repo.GetBookByTitle("No Such Book")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBookByID(999)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetAllBooks_SortedByTitle(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	authorID, genreID := seedAuthorAndGenre(t, db)

	_, err := repo.CreateBook("The Left Hand of Darkness", authorID, genreID)
	require.NoError(t, err)
	_, err = repo.CreateBook("A Wizard of Earthsea", authorID, genreID)
	require.NoError(t, err)

	books, err := repo.GetAllBooks()

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "A Wizard of Earthsea", books[0].Title)
	assert.Equal(t, "The Left Hand of Darkness", books[1].Title)
}

func TestRepository_CountBooks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	authorID, genreID := seedAuthorAndGenre(t, db)

	count, err := repo.CountBooks()
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.CreateBook("The Dispossessed", authorID, genreID)
	require.NoError(t, err)

	count, err = repo.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
