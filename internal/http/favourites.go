package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/books"
)

// FavouritesController handles marking and unmarking books as favourites.
// Both routes sit behind RequireAuth in the route table.
type FavouritesController struct {
	books          BookStore
	favourites     FavouritesStore
	sessionManager *auth.SessionManager
}

func NewFavouritesController(bookStore BookStore, favouritesStore FavouritesStore, sessionManager *auth.SessionManager) *FavouritesController {
	return &FavouritesController{
		books:          bookStore,
		favourites:     favouritesStore,
		sessionManager: sessionManager,
	}
}

// AddFavourite marks a book as a favourite of the current user. Adding a book
// that is already a favourite is a no-op and flashes nothing. An unknown book
// id is a 404.
// POST /favorite_books/:book_id
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := fc.books.GetBookByID(bookID)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	added, err := fc.favourites.AddFavourite(auth.GetUserID(c), bookID)
	if err != nil {
		respondInternalError(c, err, "add favourite")
		return
	}

	if added {
		flash(c, fc.sessionManager, auth.FlashCategoryMessage, "Added "+book.Title+" to favorites.")
	}

	c.Redirect(http.StatusFound, "/books/"+strconv.FormatUint(uint64(bookID), 10))
}

// RemoveFavourite removes a book from the current user's favourites.
// Removing a book that is not a favourite is a no-op and flashes nothing.
// POST /unfavorite_books/:book_id
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := fc.books.GetBookByID(bookID)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	removed, err := fc.favourites.RemoveFavourite(auth.GetUserID(c), bookID)
	if err != nil {
		respondInternalError(c, err, "remove favourite")
		return
	}

	if removed {
		flash(c, fc.sessionManager, auth.FlashCategoryMessage, "Removed "+book.Title+" from favorites.")
	}

	c.Redirect(http.StatusFound, "/books/"+strconv.FormatUint(uint64(bookID), 10))
}
