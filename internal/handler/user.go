package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sasank-in/skin-disease/internal/middleware"
	"github.com/sasank-in/skin-disease/internal/models"
	"github.com/sasank-in/skin-disease/internal/util"
)

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"phone":      u.Phone,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

// GetMe returns the signed-in user (requires RequireAPIUser).
func GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not authenticated")
		return
	}
	util.Success(c, util.Response{"user": userJSON(user)})
}
