// Package books provides database operations for catalog books.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(42)
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrNotFound is returned when no book matches the lookup.
var ErrNotFound = errors.New("book not found")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook persists a new book referencing an existing author and genre.
func (r *Repository) CreateBook(title string, authorID, genreID uint) (*entities.Book, error) {
	book := &entities.Book{
		Title:    title,
		AuthorID: authorID,
		GenreID:  genreID,
	}

	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID retrieves a book with its author and genre preloaded.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genre").First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetBookByTitle retrieves a book by exact title.
func (r *Repository) GetBookByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genre").Where("title = ?", title).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetAllBooks returns every book with author and genre preloaded,
// ordered by title. No pagination; acceptable at this scale.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Preload("Genre").Order("title ASC").Find(&books).Error
	return books, err
}

// CountBooks returns the total number of books.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
