package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sasank-in/skin-disease/internal/auth"
	"github.com/sasank-in/skin-disease/internal/models"
	"github.com/sasank-in/skin-disease/internal/util"
)

const (
	// CookieName holds the access token for browser sessions.
	CookieName = "access_token"

	currentUserKey = "currentUser"
)

// LoadUser resolves the access token from the Authorization header or the
// access_token cookie and stores the matching user in the context. Requests
// without a valid token pass through anonymously; guards decide what to do.
func LoadUser(tokens *auth.Tokens, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// Authorization: Bearer xxx
		if h := c.GetHeader("Authorization"); h != "" {
			parts := strings.SplitN(h, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = strings.TrimSpace(parts[1])
			}
		}
		if tokenStr == "" {
			if cookie, err := c.Cookie(CookieName); err == nil {
				tokenStr = cookie
			}
		}

		email, ok := tokens.Validate(tokenStr)
		if !ok {
			c.Next()
			return
		}

		var user models.User
		err := DB(c, db).Where("email = ?", email).First(&user).Error
		switch {
		case err == nil:
			c.Set(currentUserKey, &user)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("[%s] load user %s: %v", RequestID(c), email, err)
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in user or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// RequireLogin sends anonymous page requests to /login.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminPage renders a 403 page for signed-in non-admins. Use after RequireLogin.
func RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			c.HTML(http.StatusForbidden, "error.html", gin.H{
				"title":   "Forbidden",
				"status":  http.StatusForbidden,
				"message": "Admin access required.",
				"user":    CurrentUser(c),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPIUser answers 401 for API calls without a valid session.
func RequireAPIUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			util.AbortError(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
			return
		}
		c.Next()
	}
}

// RequireAPIAdmin answers 401 for anonymous calls and 403 for non-admins.
func RequireAPIAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			util.AbortError(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
			return
		}
		if !user.IsAdmin() {
			util.AbortError(c, http.StatusForbidden, util.CodeForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
