package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sasank-in/skin-disease/internal/assistant"
	"github.com/sasank-in/skin-disease/internal/middleware"
)

type AssistantHandler struct {
	Service *assistant.Service
}

func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{Service: svc}
}

func (h *AssistantHandler) Page(c *gin.Context) {
	render(c, http.StatusOK, "assistant.html", gin.H{
		"provider": h.Service.ProviderName(),
	})
}

// Submit always renders an insight; the note explains a heuristic fallback.
func (h *AssistantHandler) Submit(c *gin.Context) {
	symptoms := strings.TrimSpace(c.PostForm("symptoms"))
	duration := strings.TrimSpace(c.PostForm("duration"))
	if symptoms == "" {
		render(c, http.StatusBadRequest, "assistant.html", gin.H{
			"provider":        h.Service.ProviderName(),
			"assistant_error": "Please describe your symptoms.",
		})
		return
	}

	insight, note := h.Service.Generate(c.Request.Context(), symptoms, duration)
	if note != "" {
		log.Printf("[%s] assistant fallback: %s", middleware.RequestID(c), note)
	}
	render(c, http.StatusOK, "assistant.html", gin.H{
		"provider":         h.Service.ProviderName(),
		"symptoms":         symptoms,
		"duration":         duration,
		"assistant_result": insight,
		"assistant_error":  note,
	})
}
