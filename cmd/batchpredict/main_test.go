package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sasank-in/skin-disease/internal/classifier"
)

type fixedModel struct{}

func (fixedModel) Names() []string { return []string{"Acne", "Eczema", "Melanoma"} }

func (fixedModel) Classify(context.Context, string) (classifier.Probs, error) {
	return classifier.Probs{0.7, 0.2, 0.1}, nil
}

func TestRunPrintsTopK(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := run(context.Background(), classifier.New(fixedModel{}), dir, 2, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "notes.txt") {
		t.Fatalf("non-image listed:\n%s", got)
	}
	if strings.Index(got, "a.JPG") > strings.Index(got, "b.png") {
		t.Fatalf("images not sorted:\n%s", got)
	}
	if !strings.Contains(got, "Acne") || !strings.Contains(got, "70.00%") || strings.Contains(got, "Melanoma") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestRunEmptyFolder(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), classifier.New(fixedModel{}), t.TempDir(), 3, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "No images found." {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunMissingFolder(t *testing.T) {
	err := run(context.Background(), classifier.New(fixedModel{}), filepath.Join(t.TempDir(), "nope"), 3, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "input folder not found") {
		t.Fatalf("expected missing folder error, got %v", err)
	}
}
