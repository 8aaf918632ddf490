package http

import (
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
)

// RouterConfig holds all dependencies needed to create the HTTP router.
// Using a config struct keeps NewRouter's signature stable as wiring grows
// and makes partially-wired routers easy to build in tests.
type RouterConfig struct {
	Database *database.Database

	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware

	AuthorStore     AuthorStore
	GenreStore      GenreStore
	BookStore       BookStore
	FavouritesStore FavouritesStore

	CSRFSecret    []byte
	SecureCookies bool

	TemplatesPath string
	StaticPath    string
	Version       string
}
