package classifier

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest describes a trained classifier exposed by an inference server.
//
//	names: [Acne, Eczema, Melanoma]
//	endpoint: http://localhost:9000/classify
//	timeout: 30s
type Manifest struct {
	Names    []string      `yaml:"names"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("model not found at %s: set MODEL_PATH or place model.yaml in checkpoints/", path)
		}
		return nil, fmt.Errorf("read model manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model manifest: %w", err)
	}
	if len(m.Names) == 0 {
		return nil, fmt.Errorf("model manifest %s lists no class names", path)
	}
	if m.Endpoint == "" {
		return nil, fmt.Errorf("model manifest %s has no endpoint", path)
	}
	if m.Timeout <= 0 {
		m.Timeout = 30 * time.Second
	}
	return &m, nil
}
