package auth

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}

	// Must start with /
	if !strings.HasPrefix(path, "/") {
		return false
	}

	// Reject protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}

	// Reject URLs with schemes
	if strings.Contains(path, "://") {
		return false
	}

	// Reject paths with backslashes (potential bypass attempts)
	if strings.Contains(path, "\\") {
		return false
	}

	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/" if invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// SignUpForm carries the sign-up fields; constraints mirror the auth
// service's own validation so failures surface as field errors.
type SignUpForm struct {
	Username string `form:"username" binding:"required,min=3,max=64"`
	Password string `form:"password" binding:"required,min=8,max=72"`
}

// AuthController handles sign-up, login and logout.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	templates      *template.Template
	loginLimiter   *LoginLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, templatesPath string) *AuthController {
	// Parse auth templates; absent templates (tests) fall back to JSON
	pattern := filepath.Join(templatesPath, "auth", "*.html")
	tmpl, err := template.ParseGlob(pattern)
	if err != nil {
		tmpl = nil
	}

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		templates:      tmpl,
		loginLimiter:   NewLoginLimiter(DefaultLoginLimiterConfig()),
	}
}

// Stop releases the login limiter's background goroutine.
func (ac *AuthController) Stop() {
	if ac.loginLimiter != nil {
		ac.loginLimiter.Stop()
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/signup", ac.SignUpPage)
	router.POST("/signup", ac.SignUp)
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/logout", ac.Logout)
}

// SignUpPage renders the sign-up form.
func (ac *AuthController) SignUpPage(c *gin.Context) {
	if ac.sessionManager != nil && ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ac.renderTemplate(c, "signup.html", gin.H{
		"Title": "Sign Up",
	})
}

// SignUp handles the sign-up form submission. Validation precedes the single
// user insert, so a failed submission writes nothing.
func (ac *AuthController) SignUp(c *gin.Context) {
	var form SignUpForm
	if err := c.ShouldBind(&form); err != nil {
		ac.renderTemplate(c, "signup.html", gin.H{
			"Title":    "Sign Up",
			"Username": c.PostForm("username"),
			"Errors":   signUpFieldErrors(err),
		})
		return
	}

	_, err := ac.service.Register(form.Username, form.Password)
	if err != nil {
		errorMsg := "Failed to create account"
		switch {
		case errors.Is(err, ErrUserExists):
			errorMsg = "That username is already taken."
		case errors.Is(err, ErrUsernameInvalid):
			errorMsg = "Username must be 3-64 characters, alphanumeric with underscore/hyphen only."
		case errors.Is(err, ErrPasswordTooShort):
			errorMsg = "Password must be at least 8 characters."
		case errors.Is(err, ErrPasswordTooLong):
			errorMsg = "Password exceeds maximum length of 72 characters."
		}

		ac.renderTemplate(c, "signup.html", gin.H{
			"Title":    "Sign Up",
			"Username": form.Username,
			"Error":    errorMsg,
		})
		return
	}

	ac.flash(c, FlashCategoryMessage, "Account Created.")
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager != nil && ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ac.renderTemplate(c, "login.html", gin.H{
		"Title": "Login",
		"Next":  sanitizeRedirectPath(c.Query("next")),
	})
}

// Login handles the login form submission. Failures are reported with a
// single generic message regardless of whether the username exists, and are
// throttled per IP+username.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))
	clientIP := c.ClientIP()

	if ac.loginLimiter != nil {
		if allowed, retryAfter := ac.loginLimiter.Allow(clientIP, username); !allowed {
			c.Header("Retry-After", retryAfter.String())
			ac.renderTemplate(c, "login.html", gin.H{
				"Title":    "Login",
				"Next":     next,
				"Username": username,
				"Error":    "Too many login attempts. Please try again later.",
			})
			return
		}
	}

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		if ac.loginLimiter != nil {
			ac.loginLimiter.RecordFailure(clientIP, username)
		}
		ac.flash(c, FlashCategoryError, "Login unsuccessful. Please check username and password.")
		ac.renderTemplate(c, "login.html", gin.H{
			"Title":    "Login",
			"Next":     next,
			"Username": username,
		})
		return
	}

	if ac.loginLimiter != nil {
		ac.loginLimiter.RecordSuccess(clientIP, username)
	}

	if ac.sessionManager != nil {
		if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
			ac.renderTemplate(c, "login.html", gin.H{
				"Title":    "Login",
				"Next":     next,
				"Username": username,
				"Error":    "Failed to create session",
			})
			return
		}
	}

	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session and redirects to the homepage. Logging out
// while not logged in is harmless.
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		_ = ac.sessionManager.DestroySession(c.Request)
	}
	c.Redirect(http.StatusFound, "/")
}

// signUpFieldErrors converts binding failures to per-field messages.
func signUpFieldErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["Form"] = "Invalid form submission."
		return fieldErrors
	}

	for _, fe := range validationErrors {
		switch fe.Field() {
		case "Username":
			if fe.Tag() == "required" {
				fieldErrors["Username"] = "Username is required."
			} else {
				fieldErrors["Username"] = "Username must be 3-64 characters."
			}
		case "Password":
			if fe.Tag() == "required" {
				fieldErrors["Password"] = "Password is required."
			} else {
				fieldErrors["Password"] = "Password must be 8-72 characters."
			}
		}
	}

	return fieldErrors
}

func (ac *AuthController) flash(c *gin.Context, category, message string) {
	if ac.sessionManager != nil {
		ac.sessionManager.Flash(c.Request, category, message)
	}
}

// renderTemplate renders an auth template or falls back to JSON when the
// template directory is unavailable (tests).
func (ac *AuthController) renderTemplate(c *gin.Context, name string, data gin.H) {
	if ac.sessionManager != nil {
		data["Flashes"] = ac.sessionManager.PopFlashes(c.Request)
		data["LoggedIn"] = ac.sessionManager.IsAuthenticated(c.Request)
	}
	data["CSRFToken"] = GetCSRFToken(c)

	if ac.templates == nil {
		c.JSON(http.StatusOK, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}
