// Package classifier holds the process-wide inference handle used by the
// prediction page and the batch CLI.
package classifier

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/sasank-in/skin-disease/internal/metrics"
)

var (
	ErrModelNotLoaded = errors.New("model not loaded")
	ErrEmptyImage     = errors.New("empty file")
)

// Prediction is one labelled confidence.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Percent renders the confidence for display.
func (p Prediction) Percent() float64 { return p.Confidence * 100 }

// Service is safe for concurrent use; the model is read-only once loaded.
type Service struct {
	model Model
}

// Open loads the manifest at path and connects to its inference server.
func Open(path string, client *http.Client) (*Service, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return New(NewRemote(m, client)), nil
}

// New wraps an already constructed model. A nil model yields an unloaded handle.
func New(m Model) *Service {
	return &Service{model: m}
}

func (s *Service) Loaded() bool { return s != nil && s.model != nil }

func (s *Service) Names() []string {
	if !s.Loaded() {
		return nil
	}
	return s.model.Names()
}

// Predict classifies the image at imagePath and returns the k most likely
// labels. k is clamped to [1, number of classes].
func (s *Service) Predict(ctx context.Context, imagePath string, k int) ([]Prediction, error) {
	if !s.Loaded() {
		return nil, ErrModelNotLoaded
	}
	info, err := os.Stat(imagePath)
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, ErrEmptyImage
	}

	started := time.Now()
	probs, err := s.model.Classify(ctx, imagePath)
	metrics.InferenceDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, err
	}

	names := s.model.Names()
	k = clamp(k, 1, len(names))

	var idx []int
	var conf []float64
	if k <= 5 {
		idx, conf = probs.Top5()
	} else {
		idx, conf = probs.Sorted(k)
	}
	if len(idx) > k {
		idx, conf = idx[:k], conf[:k]
	}

	out := make([]Prediction, 0, len(idx))
	for i, n := range idx {
		if n < 0 || n >= len(names) {
			continue
		}
		out = append(out, Prediction{Label: names[n], Confidence: conf[i]})
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
