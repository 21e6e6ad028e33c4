package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Provider is a hosted language model that answers a system + user prompt
// with raw text.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, system, user string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// StatusError is a non-2xx reply from a provider.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s error: %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s error: %d: %s", e.Provider, e.Code, e.Message)
}

const maxBodyBytes = 1 << 20

// doJSON sends a request and decodes a 2xx JSON body into out.
func doJSON(client *http.Client, req *http.Request, provider string, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return &StatusError{Provider: provider, Code: resp.StatusCode, Message: errorMessage(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", provider, err)
	}
	return nil
}

// both providers wrap errors as {"error": {"message": "..."}}
func errorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return strings.TrimSpace(e.Error.Message)
}

func newJSONRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

/* ---------------- Groq (OpenAI compatible) ---------------- */

type Groq struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGroq(apiKey, model, baseURL string, client *http.Client) *Groq {
	if baseURL == "" {
		baseURL = "https://api.groq.com"
	}
	return &Groq{apiKey: apiKey, model: model, baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (g *Groq) Name() string  { return "Groq" }
func (g *Groq) Model() string { return g.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float32           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Groq) Complete(ctx context.Context, system, user string) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.4,
		MaxTokens:      500,
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	req, err := newJSONRequest(ctx, http.MethodPost, g.baseURL+"/openai/v1/chat/completions", payload)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	var out chatResponse
	if err := doJSON(g.client, req, g.Name(), &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

func (g *Groq) ListModels(ctx context.Context) ([]string, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, g.baseURL+"/openai/v1/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	var out struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := doJSON(g.client, req, g.Name(), &out); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out.Data))
	for _, m := range out.Data {
		names = append(names, m.ID)
	}
	return names, nil
}

/* ---------------- Gemini ---------------- */

type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini accepts model names with or without the "models/" prefix.
func NewGemini(apiKey, model, baseURL string, client *http.Client) *Gemini {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   strings.TrimPrefix(strings.TrimSpace(model), "models/"),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (g *Gemini) Name() string  { return "Gemini" }
func (g *Gemini) Model() string { return g.model }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float32 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	var payload geminiRequest
	payload.Contents = []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: system}}},
		{Role: "user", Parts: []geminiPart{{Text: user}}},
	}
	payload.GenerationConfig.Temperature = 0.4
	payload.GenerationConfig.MaxOutputTokens = 500

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := newJSONRequest(ctx, http.MethodPost, url, payload)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	var out geminiResponse
	if err := doJSON(g.client, req, g.Name(), &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func (g *Gemini) ListModels(ctx context.Context) ([]string, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, g.baseURL+"/v1beta/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := doJSON(g.client, req, g.Name(), &out); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}
