package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sasank-in/skin-disease/internal/middleware"
	"github.com/sasank-in/skin-disease/internal/models"
	"github.com/sasank-in/skin-disease/internal/util"
)

const recentFeedbackLimit = 20

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// Page lists accounts and the latest feedback.
func (h *AdminHandler) Page(c *gin.Context) {
	db := middleware.DB(c, h.DB)

	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		h.pageError(c, "list users", err)
		return
	}
	var feedback []models.Feedback
	if err := db.Order("created_at DESC").Limit(recentFeedbackLimit).Find(&feedback).Error; err != nil {
		h.pageError(c, "list feedback", err)
		return
	}
	var feedbackCount int64
	if err := db.Model(&models.Feedback{}).Count(&feedbackCount).Error; err != nil {
		h.pageError(c, "count feedback", err)
		return
	}

	render(c, http.StatusOK, "admin.html", gin.H{
		"title":          "Admin",
		"users":          users,
		"feedback":       feedback,
		"feedback_count": feedbackCount,
		"roles":          []models.Role{models.RoleUser, models.RoleAdmin},
	})
}

func (h *AdminHandler) pageError(c *gin.Context, what string, err error) {
	log.Printf("[%s] admin %s: %v", middleware.RequestID(c), what, err)
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"title":   "Error",
		"status":  http.StatusInternalServerError,
		"message": "Something went wrong. Please try again.",
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := middleware.DB(c, h.DB).Order("id ASC").Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to list users")
		return
	}
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userJSON(&users[i]))
	}
	util.Success(c, util.Response{"users": out})
}

type roleReq struct {
	Role string `form:"role" json:"role"`
}

// ChangeRole sets a user's role to "user" or "admin".
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	user, ok := h.loadTarget(c)
	if !ok {
		return
	}

	var req roleReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request")
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid role")
		return
	}

	if err := middleware.DB(c, h.DB).Model(user).Update("role", role).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to update role")
		return
	}
	user.Role = role
	log.Printf("[%s] admin %d set role of user %d to %s",
		middleware.RequestID(c), middleware.CurrentUser(c).ID, user.ID, role)

	h.done(c, util.Response{"user": userJSON(user)})
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	user, ok := h.loadTarget(c)
	if !ok {
		return
	}
	if user.ID == middleware.CurrentUser(c).ID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "You cannot delete your own account")
		return
	}
	if err := middleware.DB(c, h.DB).Delete(user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to delete user")
		return
	}
	log.Printf("[%s] admin %d deleted user %d", middleware.RequestID(c), middleware.CurrentUser(c).ID, user.ID)

	h.done(c, util.Response{"deleted": user.ID})
}

func (h *AdminHandler) loadTarget(c *gin.Context) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid user id")
		return nil, false
	}
	var user models.User
	if err := middleware.DB(c, h.DB).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to load user")
		}
		return nil, false
	}
	return &user, true
}

// done answers browser form posts with a redirect back to the admin page and
// API clients with the JSON envelope.
func (h *AdminHandler) done(c *gin.Context, data util.Response) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	util.Success(c, data)
}
