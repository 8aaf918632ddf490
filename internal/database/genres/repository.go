// Package genres provides database operations for catalog genres.
package genres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrNotFound is returned when no genre matches the lookup.
var ErrNotFound = errors.New("genre not found")

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateGenre persists a new genre.
func (r *Repository) CreateGenre(name string) (*entities.Genre, error) {
	genre := &entities.Genre{Name: name}
	if err := r.db.Create(genre).Error; err != nil {
		return nil, err
	}
	return genre, nil
}

// GetGenreByID retrieves a genre by ID.
func (r *Repository) GetGenreByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.First(&genre, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}

// GetGenreByName retrieves a genre by exact name.
func (r *Repository) GetGenreByName(name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.Where("name = ?", name).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}

// GetAllGenres returns every genre, ordered by name for form selects.
func (r *Repository) GetAllGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}
