// Package favourites provides database operations for the user/book
// favourites relation.
//
// The relation is stored as an explicit join table (favourite_books) with a
// composite primary key, so membership is at-most-once by construction. Adds
// and removes are issued as plain insert/delete statements against the join
// table rather than through live association collections.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	added, err := repo.AddFavourite(userID, bookID)
package favourites

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFavourite inserts the (user, book) join row. Returns true when a row was
// inserted and false when the pair was already present. ON CONFLICT DO NOTHING
// makes a concurrent duplicate add harmless.
func (r *Repository) AddFavourite(userID, bookID uint) (bool, error) {
	fav := entities.Favourite{UserID: userID, BookID: bookID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveFavourite deletes the (user, book) join row. Returns true when a row
// was deleted and false when no membership existed; removal of an absent pair
// is a no-op.
func (r *Repository) RemoveFavourite(userID, bookID uint) (bool, error) {
	result := r.db.
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.Favourite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsFavourite reports whether the user has favourited the book.
func (r *Repository) IsFavourite(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Favourite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// GetFavouriteBooks returns the user's favourite books with author and genre
// preloaded, most recently favourited first.
func (r *Repository) GetFavouriteBooks(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Model(&entities.Book{}).
		Joins("JOIN favourite_books ON favourite_books.book_id = books.id").
		Where("favourite_books.user_id = ?", userID).
		Order("favourite_books.created_at DESC").
		Preload("Author").Preload("Genre").
		Find(&books).Error
	return books, err
}

// GetFavouriteCount returns how many users have favourited the book.
func (r *Repository) GetFavouriteCount(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Favourite{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}
