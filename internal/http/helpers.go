package http

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Returns the parsed ID or responds with a 400 error and
// returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// loadTemplates parses the page templates under the given directory.
// Returns nil when the directory is absent (tests), in which case handlers
// fall back to JSON responses.
func loadTemplates(templatesPath string) *template.Template {
	tmpl, err := template.ParseGlob(filepath.Join(templatesPath, "*.html"))
	if err != nil {
		return nil
	}
	return tmpl
}

// renderPage renders a page template with flash messages and auth data
// attached, or falls back to JSON when no templates are loaded.
func renderPage(c *gin.Context, sm *auth.SessionManager, tmpl *template.Template, name string, data gin.H) {
	if sm != nil {
		data["Flashes"] = sm.PopFlashes(c.Request)
	}
	data["Auth"] = GetAuthTemplateData(c)

	if tmpl == nil {
		c.JSON(http.StatusOK, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}

// flash queues a one-shot notice when a session manager is configured.
func flash(c *gin.Context, sm *auth.SessionManager, category, message string) {
	if sm != nil {
		sm.Flash(c.Request, category, message)
	}
}
