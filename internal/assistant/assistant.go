package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sasank-in/skin-disease/internal/metrics"
)

const systemPrompt = "You are a clinical support assistant for skin concerns. " +
	"You do not diagnose; you provide possible explanations, seriousness level, " +
	"red flags, self-care, and next steps. Keep it concise and safe. " +
	"Return STRICT JSON with keys: summary, seriousness, next_steps, red_flags, self_care, follow_up_questions."

// NoProviderNote is returned alongside the heuristic when no API key is configured.
const NoProviderNote = "No assistant provider configured: set GROQ_API_KEY or GEMINI_API_KEY."

// ProviderSettings configures one hosted model.
type ProviderSettings struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config is resolved once at startup. Groq wins when both keys are present.
type Config struct {
	Groq    ProviderSettings
	Gemini  ProviderSettings
	Timeout time.Duration
}

// Service produces insights from free-text symptoms.
type Service struct {
	provider Provider
}

// New picks the provider from cfg. client may be nil.
func New(cfg Config, client *http.Client) *Service {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	var p Provider
	switch {
	case strings.TrimSpace(cfg.Groq.APIKey) != "":
		p = NewGroq(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.BaseURL, client)
	case strings.TrimSpace(cfg.Gemini.APIKey) != "":
		p = NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL, client)
	}
	return &Service{provider: p}
}

// NewWithProvider is used when the caller already built a Provider; p may be nil.
func NewWithProvider(p Provider) *Service {
	return &Service{provider: p}
}

// ProviderName is empty when no provider is configured.
func (s *Service) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// Generate always returns a usable Insight. The note is non-empty when the
// answer came from the heuristic instead of the model.
func (s *Service) Generate(ctx context.Context, symptoms, duration string) (Insight, string) {
	if s.provider == nil {
		metrics.AssistantRequests.WithLabelValues("none", "unconfigured").Inc()
		return Heuristic(symptoms, duration), NoProviderNote
	}
	name := s.provider.Name()

	user := strings.TrimSpace(fmt.Sprintf("Symptoms: %s\nDuration: %s", symptoms, duration))
	text, err := s.provider.Complete(ctx, systemPrompt, user)
	if err != nil {
		metrics.AssistantRequests.WithLabelValues(name, "error").Inc()
		return Heuristic(symptoms, duration), s.describe(ctx, err)
	}
	if strings.TrimSpace(text) == "" {
		metrics.AssistantRequests.WithLabelValues(name, "empty").Inc()
		return Heuristic(symptoms, duration), name + " returned an empty response."
	}
	metrics.AssistantRequests.WithLabelValues(name, "ok").Inc()
	return Normalize(text), ""
}

func (s *Service) describe(ctx context.Context, err error) string {
	name := s.provider.Name()
	var se *StatusError
	if !errors.As(err, &se) {
		return fmt.Sprintf("%s request failed: %v", name, err)
	}
	switch se.Code {
	case http.StatusTooManyRequests:
		return fmt.Sprintf("%s rate limit reached (429). Try again shortly.", name)
	case http.StatusNotFound:
		note := fmt.Sprintf("%s model %q was not found (404).", name, s.provider.Model())
		available, lerr := s.provider.ListModels(ctx)
		switch {
		case lerr != nil:
			return note + fmt.Sprintf(" Listing models failed: %v", lerr)
		case len(available) > 0:
			if len(available) > 10 {
				available = available[:10]
			}
			return note + " Available models: " + strings.Join(available, ", ")
		}
		return note
	}
	return se.Error()
}
