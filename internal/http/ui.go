package http

import (
	"errors"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/books"
)

// UIController renders the public pages: the homepage book list and the
// book detail page. Both are reachable without a session.
type UIController struct {
	books          BookStore
	favourites     FavouritesStore
	sessionManager *auth.SessionManager
	templates      *template.Template
}

func NewUIController(bookStore BookStore, favouritesStore FavouritesStore, sessionManager *auth.SessionManager, templatesPath string) *UIController {
	return &UIController{
		books:          bookStore,
		favourites:     favouritesStore,
		sessionManager: sessionManager,
		templates:      loadTemplates(templatesPath),
	}
}

// HomePage lists all books with author and genre preloaded. Logged-in users
// also see their favourite books.
// GET /
func (uc *UIController) HomePage(c *gin.Context) {
	allBooks, err := uc.books.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "load books")
		return
	}

	data := gin.H{
		"Title": "Bookshelf",
		"Books": allBooks,
	}

	if userID := auth.GetUserID(c); userID != auth.AnonymousUserID {
		favouriteBooks, err := uc.favourites.GetFavouriteBooks(userID)
		if err != nil {
			respondInternalError(c, err, "load favourites")
			return
		}
		data["FavouriteBooks"] = favouriteBooks
	}

	renderPage(c, uc.sessionManager, uc.templates, "index.html", data)
}

// BookPage shows a single book with its favourite state for the current
// principal and the total favourite count. 404 on unknown id.
// GET /books/:id
func (uc *UIController) BookPage(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := uc.books.GetBookByID(bookID)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "load book")
		return
	}

	isFavourite := false
	if userID := auth.GetUserID(c); userID != auth.AnonymousUserID {
		isFavourite, err = uc.favourites.IsFavourite(userID, bookID)
		if err != nil {
			respondInternalError(c, err, "check favourite")
			return
		}
	}

	count, err := uc.favourites.GetFavouriteCount(bookID)
	if err != nil {
		respondInternalError(c, err, "count favourites")
		return
	}

	renderPage(c, uc.sessionManager, uc.templates, "book_detail.html", gin.H{
		"Title":          book.Title,
		"Book":           book,
		"IsFavourite":    isFavourite,
		"FavouriteCount": count,
	})
}
