package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sasank-in/skin-disease/internal/directory"
	"github.com/sasank-in/skin-disease/internal/listing"
	"github.com/sasank-in/skin-disease/internal/middleware"
)

type SpecialistHandler struct {
	Scraper listing.Scraper
}

func NewSpecialistHandler(s listing.Scraper) *SpecialistHandler {
	return &SpecialistHandler{Scraper: s}
}

// Search serves both the GET query form and the POST form submission.
func (h *SpecialistHandler) Search(c *gin.Context) {
	var disease, location string
	if c.Request.Method == http.MethodPost {
		disease, location = c.PostForm("disease"), c.PostForm("location")
	} else {
		disease, location = c.Query("disease"), c.Query("location")
	}
	disease = strings.TrimSpace(disease)
	location = strings.TrimSpace(location)

	var hospitals []directory.Hospital
	if disease != "" {
		hospitals = directory.Hospitals(disease)
	}

	clinics, note := h.Scraper.Clinics(c.Request.Context(), location)
	if note != "" {
		log.Printf("[%s] clinic listing %q: %s", middleware.RequestID(c), location, note)
	}

	render(c, http.StatusOK, "specialist.html", gin.H{
		"disease":          disease,
		"location":         location,
		"hospitals":        hospitals,
		"clinics":          clinics,
		"clinic_error":     note,
		"city_specialists": directory.CitySpecialists(location),
		"cities":           directory.Cities(),
	})
}
