package http

import "github.com/mrlokans/bookshelf/internal/entities"

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller depends only on the methods it actually uses;
// the concrete implementations live in internal/database.

// AuthorStore provides author persistence for the catalog controller.
type AuthorStore interface {
	CreateAuthor(name string) (*entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	GetAllAuthors() ([]entities.Author, error)
}

// GenreStore provides genre persistence for the catalog controller.
type GenreStore interface {
	CreateGenre(name string) (*entities.Genre, error)
	GetGenreByID(id uint) (*entities.Genre, error)
	GetAllGenres() ([]entities.Genre, error)
}

// BookStore provides book persistence for the catalog and UI controllers.
type BookStore interface {
	CreateBook(title string, authorID, genreID uint) (*entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
}

// FavouritesStore provides the favourites relation for the favourites and
// UI controllers.
type FavouritesStore interface {
	AddFavourite(userID, bookID uint) (bool, error)
	RemoveFavourite(userID, bookID uint) (bool, error)
	IsFavourite(userID, bookID uint) (bool, error)
	GetFavouriteBooks(userID uint) ([]entities.Book, error)
	GetFavouriteCount(bookID uint) (int64, error)
}
