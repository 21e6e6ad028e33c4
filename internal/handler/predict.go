package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sasank-in/skin-disease/internal/classifier"
	"github.com/sasank-in/skin-disease/internal/directory"
	"github.com/sasank-in/skin-disease/internal/metrics"
	"github.com/sasank-in/skin-disease/internal/middleware"
)

const defaultTopK = 3

type PredictHandler struct {
	Classifier *classifier.Service
	TempDir    string
}

func NewPredictHandler(svc *classifier.Service) *PredictHandler {
	return &PredictHandler{Classifier: svc}
}

// Predict classifies one uploaded image and renders the top-k labels with
// hospital suggestions for the most likely one.
func (h *PredictHandler) Predict(c *gin.Context) {
	header, err := c.FormFile("image")
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		metrics.Predictions.WithLabelValues("rejected").Inc()
		render(c, http.StatusRequestEntityTooLarge, "remedy.html", gin.H{
			"error": fmt.Sprintf("Image is too large. Maximum upload size is %d MiB.", tooBig.Limit>>20),
		})
		return
	}
	if err != nil || !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		metrics.Predictions.WithLabelValues("rejected").Inc()
		render(c, http.StatusBadRequest, "remedy.html", gin.H{
			"error": "Please upload a valid image file.",
		})
		return
	}

	topK, err := strconv.Atoi(strings.TrimSpace(c.DefaultPostForm("top_k", strconv.Itoa(defaultTopK))))
	if err != nil {
		topK = defaultTopK
	}

	predictions, err := h.classify(c, header, topK)
	if err != nil {
		metrics.Predictions.WithLabelValues("error").Inc()
		log.Printf("[%s] predict %q: %v", middleware.RequestID(c), header.Filename, err)
		render(c, http.StatusInternalServerError, "remedy.html", gin.H{
			"error": "Prediction failed: " + failureText(err),
		})
		return
	}
	metrics.Predictions.WithLabelValues("ok").Inc()

	var primary string
	var hospitals []directory.Hospital
	if len(predictions) > 0 {
		primary = predictions[0].Label
		hospitals = directory.Hospitals(primary)
	}
	render(c, http.StatusOK, "remedy.html", gin.H{
		"result":          predictions,
		"hospitals":       hospitals,
		"primary_disease": primary,
		"upload_name":     header.Filename,
	})
}

// failureText is the message shown for a failed prediction.
func failureText(err error) string {
	switch {
	case errors.Is(err, classifier.ErrEmptyImage):
		return "Empty file."
	case errors.Is(err, classifier.ErrModelNotLoaded):
		return "Model not loaded."
	}
	return err.Error()
}

// classify copies the upload to a temp file that is removed on every path.
func (h *PredictHandler) classify(c *gin.Context, header *multipart.FileHeader, topK int) ([]classifier.Prediction, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(h.TempDir, "upload-*"+uploadSuffix(header.Filename, header.Header.Get("Content-Type")))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, classifier.ErrEmptyImage
	}

	return h.Classifier.Predict(c.Request.Context(), tmp.Name(), topK)
}

var suffixByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// uploadSuffix keeps the classifier's decoder happy: file extension first,
// then the declared content type, then .jpg.
func uploadSuffix(filename, contentType string) string {
	if ext := filepath.Ext(filepath.Base(filename)); ext != "" && ext != "." && !strings.ContainsAny(ext, `/\`) {
		return strings.ToLower(ext)
	}
	if s, ok := suffixByType[contentType]; ok {
		return s
	}
	return ".jpg"
}
