package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Model produces one probability per class name for an image on disk.
type Model interface {
	Names() []string
	Classify(ctx context.Context, imagePath string) (Probs, error)
}

// Remote posts images to an inference server as multipart "image" and
// expects {"probs": [...]} back.
type Remote struct {
	endpoint string
	names    []string
	client   *http.Client
}

func NewRemote(m *Manifest, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: m.Timeout}
	}
	return &Remote{endpoint: m.Endpoint, names: m.Names, client: client}
}

func (r *Remote) Names() []string { return r.names }

func (r *Remote) Classify(ctx context.Context, imagePath string) (Probs, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference server responded with status %d", resp.StatusCode)
	}

	var out struct {
		Probs []float64 `json:"probs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}
	if len(out.Probs) != len(r.names) {
		return nil, fmt.Errorf("inference returned %d probabilities for %d classes", len(out.Probs), len(r.names))
	}
	return Probs(out.Probs), nil
}
