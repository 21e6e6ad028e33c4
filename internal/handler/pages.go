package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sasank-in/skin-disease/internal/middleware"
)

// render fills the fields every layout needs and writes the named template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["user"]; !ok {
		data["user"] = middleware.CurrentUser(c)
	}
	if _, ok := data["title"]; !ok {
		data["title"] = "SkinDx Insight"
	}
	c.HTML(status, name, data)
}

// Index sends visitors to the upload page.
func Index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/remedy")
}

// Remedy shows the empty upload form.
func Remedy(c *gin.Context) {
	render(c, http.StatusOK, "remedy.html", gin.H{})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound renders the error page for unknown routes.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error.html", gin.H{
		"title":   "Not found",
		"status":  http.StatusNotFound,
		"message": "The page you requested does not exist.",
	})
}
