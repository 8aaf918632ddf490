package http

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/genres"
)

// CatalogController handles author, genre and book creation forms.
// All of its routes sit behind RequireAuth in the route table.
type CatalogController struct {
	authors        AuthorStore
	genres         GenreStore
	books          BookStore
	sessionManager *auth.SessionManager
	templates      *template.Template
}

func NewCatalogController(authorStore AuthorStore, genreStore GenreStore, bookStore BookStore, sessionManager *auth.SessionManager, templatesPath string) *CatalogController {
	return &CatalogController{
		authors:        authorStore,
		genres:         genreStore,
		books:          bookStore,
		sessionManager: sessionManager,
		templates:      loadTemplates(templatesPath),
	}
}

// CreateAuthorPage renders the author creation form.
// GET /create_author
func (cc *CatalogController) CreateAuthorPage(c *gin.Context) {
	renderPage(c, cc.sessionManager, cc.templates, "create_author.html", gin.H{
		"Title": "Create Author",
	})
}

// CreateAuthor handles the author creation form submission. A blank name
// flashes an error and sends the user back to the form; nothing is written.
// POST /create_author
func (cc *CatalogController) CreateAuthor(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		flash(c, cc.sessionManager, auth.FlashCategoryError, "Author name is required.")
		c.Redirect(http.StatusFound, "/create_author")
		return
	}

	author, err := cc.authors.CreateAuthor(name)
	if err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	flash(c, cc.sessionManager, auth.FlashCategoryMessage, "Author "+author.Name+" created successfully.")
	c.Redirect(http.StatusFound, "/")
}

// CreateGenrePage renders the genre creation form.
// GET /create_genre
func (cc *CatalogController) CreateGenrePage(c *gin.Context) {
	renderPage(c, cc.sessionManager, cc.templates, "create_genre.html", gin.H{
		"Title": "Create Genre",
	})
}

// CreateGenre handles the genre creation form submission.
// POST /create_genre
func (cc *CatalogController) CreateGenre(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		flash(c, cc.sessionManager, auth.FlashCategoryError, "Genre name is required.")
		c.Redirect(http.StatusFound, "/create_genre")
		return
	}

	genre, err := cc.genres.CreateGenre(name)
	if err != nil {
		respondInternalError(c, err, "create genre")
		return
	}

	flash(c, cc.sessionManager, auth.FlashCategoryMessage, "Genre "+genre.Name+" created successfully.")
	c.Redirect(http.StatusFound, "/")
}

// CreateBookPage renders the book creation form with all authors and genres
// for the select inputs.
// GET /create_book
func (cc *CatalogController) CreateBookPage(c *gin.Context) {
	allAuthors, err := cc.authors.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "load authors")
		return
	}

	allGenres, err := cc.genres.GetAllGenres()
	if err != nil {
		respondInternalError(c, err, "load genres")
		return
	}

	renderPage(c, cc.sessionManager, cc.templates, "create_book.html", gin.H{
		"Title":   "Create Book",
		"Authors": allAuthors,
		"Genres":  allGenres,
	})
}

// CreateBook handles the book creation form submission. The title must be
// non-blank and the author and genre ids must resolve to existing rows
// before anything is inserted.
// POST /create_book
func (cc *CatalogController) CreateBook(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	authorID, authorErr := strconv.ParseUint(c.PostForm("author_id"), 10, 32)
	genreID, genreErr := strconv.ParseUint(c.PostForm("genre_id"), 10, 32)

	if title == "" || authorErr != nil || genreErr != nil {
		flash(c, cc.sessionManager, auth.FlashCategoryError, "Title, author, and genre are required.")
		c.Redirect(http.StatusFound, "/create_book")
		return
	}

	if _, err := cc.authors.GetAuthorByID(uint(authorID)); err != nil {
		if errors.Is(err, authors.ErrNotFound) {
			flash(c, cc.sessionManager, auth.FlashCategoryError, "Selected author does not exist.")
			c.Redirect(http.StatusFound, "/create_book")
			return
		}
		respondInternalError(c, err, "resolve author")
		return
	}

	if _, err := cc.genres.GetGenreByID(uint(genreID)); err != nil {
		if errors.Is(err, genres.ErrNotFound) {
			flash(c, cc.sessionManager, auth.FlashCategoryError, "Selected genre does not exist.")
			c.Redirect(http.StatusFound, "/create_book")
			return
		}
		respondInternalError(c, err, "resolve genre")
		return
	}

	book, err := cc.books.CreateBook(title, uint(authorID), uint(genreID))
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	flash(c, cc.sessionManager, auth.FlashCategoryMessage, "Book "+book.Title+" created successfully.")
	c.Redirect(http.StatusFound, "/")
}
