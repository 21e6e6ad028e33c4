package handler

import (
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

type FeedbackHandler struct {
	DB *gorm.DB
}

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{DB: db}
}

// Submit stores one feedback row. Out-of-range ratings are clamped, not rejected.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	disease := strings.TrimSpace(c.PostForm("disease"))
	comments := strings.TrimSpace(c.PostForm("comments"))
	email := strings.TrimSpace(c.PostForm("email"))

	rating, err := strconv.Atoi(strings.TrimSpace(c.PostForm("rating")))
	if err != nil {
		render(c, http.StatusBadRequest, "remedy.html", gin.H{"error": "Rating must be a number between 1 and 5."})
		return
	}
	if err := util.ValidateFeedback(disease, comments, email); err != nil {
		render(c, http.StatusBadRequest, "remedy.html", gin.H{"error": err.Error()})
		return
	}

	fb := models.Feedback{
		Disease:  disease,
		Rating:   models.ClampRating(rating),
		Comments: optional(comments),
		Email:    optional(email),
	}
	if err := middleware.DB(c, h.DB).Create(&fb).Error; err != nil {
		log.Printf("[%s] save feedback: %v", middleware.RequestID(c), err)
		render(c, http.StatusInternalServerError, "remedy.html", gin.H{"error": "Could not save feedback. Please try again."})
		return
	}

	render(c, http.StatusOK, "remedy.html", gin.H{"feedback_saved": true})
}

// optional maps "" to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
