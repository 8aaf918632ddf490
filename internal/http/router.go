package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Protected routes carry RequireAuth in the route table; nothing is
// guarded implicitly.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// HSTS only makes sense on deployments that actually serve HTTPS, which
	// is what the secure-cookie flag signals
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(31536000))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Resolve the principal on every request
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Principal())
	}

	// Inject auth data for templates
	router.Use(AuthContextMiddleware())

	// Serve static files
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	// Sign-up, login, logout
	if cfg.AuthService != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	catalog := NewCatalogController(cfg.AuthorStore, cfg.GenreStore, cfg.BookStore, cfg.SessionManager, cfg.TemplatesPath)
	favourites := NewFavouritesController(cfg.BookStore, cfg.FavouritesStore, cfg.SessionManager)
	ui := NewUIController(cfg.BookStore, cfg.FavouritesStore, cfg.SessionManager, cfg.TemplatesPath)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public UI routes
	router.GET("/", ui.HomePage)
	router.GET("/books/:id", ui.BookPage)

	// Protected routes
	var requireAuth gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		requireAuth = cfg.AuthMiddleware.RequireAuth()
	}

	protected := router.Group("", requireAuth)
	protected.GET("/create_author", catalog.CreateAuthorPage)
	protected.POST("/create_author", catalog.CreateAuthor)
	protected.GET("/create_genre", catalog.CreateGenrePage)
	protected.POST("/create_genre", catalog.CreateGenre)
	protected.GET("/create_book", catalog.CreateBookPage)
	protected.POST("/create_book", catalog.CreateBook)
	protected.POST("/favorite_books/:book_id", favourites.AddFavourite)
	protected.POST("/unfavorite_books/:book_id", favourites.RemoveFavourite)

	return router
}
