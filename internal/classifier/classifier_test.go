package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type fakeModel struct {
	names []string
	probs Probs
	err   error
	calls int
}

func (f *fakeModel) Names() []string { return f.names }

func (f *fakeModel) Classify(ctx context.Context, path string) (Probs, error) {
	f.calls++
	return f.probs, f.err
}

func writeImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.jpg")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func sevenClasses() *fakeModel {
	return &fakeModel{
		names: []string{"Acne", "Eczema", "Melanoma", "Psoriasis", "Rosacea", "Vitiligo", "Warts"},
		probs: Probs{0.05, 0.30, 0.02, 0.40, 0.10, 0.08, 0.05},
	}
}

func TestPredictClampsK(t *testing.T) {
	svc := New(sevenClasses())
	img := writeImage(t, []byte("jpeg"))

	tests := []struct {
		k     int
		count int
		first string
	}{
		{k: 0, count: 1, first: "Psoriasis"},
		{k: -3, count: 1, first: "Psoriasis"},
		{k: 3, count: 3, first: "Psoriasis"},
		{k: 6, count: 6, first: "Psoriasis"},
		{k: 50, count: 7, first: "Psoriasis"},
	}
	for _, tt := range tests {
		got, err := svc.Predict(context.Background(), img, tt.k)
		if err != nil {
			t.Fatalf("k=%d: unexpected error %v", tt.k, err)
		}
		if len(got) != tt.count {
			t.Fatalf("k=%d: expected %d predictions, got %d", tt.k, tt.count, len(got))
		}
		if got[0].Label != tt.first {
			t.Fatalf("k=%d: expected %s first, got %s", tt.k, tt.first, got[0].Label)
		}
	}
}

func TestPredictOrdersFullVector(t *testing.T) {
	svc := New(sevenClasses())
	got, err := svc.Predict(context.Background(), writeImage(t, []byte("x")), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Fatalf("predictions not sorted: %+v", got)
		}
	}
	if got[1].Label != "Eczema" || got[2].Label != "Rosacea" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestPredictUnloaded(t *testing.T) {
	svc := New(nil)
	_, err := svc.Predict(context.Background(), writeImage(t, []byte("x")), 3)
	if !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestPredictEmptyImage(t *testing.T) {
	m := sevenClasses()
	svc := New(m)
	_, err := svc.Predict(context.Background(), writeImage(t, nil), 3)
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if m.calls != 0 {
		t.Fatal("model should not be called for an empty image")
	}
}

func TestTop5FewerClasses(t *testing.T) {
	idx, conf := Probs{0.2, 0.7, 0.1}.Top5()
	if len(idx) != 3 || idx[0] != 1 || conf[0] != 0.7 {
		t.Fatalf("unexpected top5 %v %v", idx, conf)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	content := "names: [Acne, Melanoma]\nendpoint: http://localhost:9000/classify\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Names) != 2 || m.Endpoint != "http://localhost:9000/classify" || m.Timeout == 0 {
		t.Fatalf("unexpected manifest %+v", m)
	}

	if _, err := LoadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("endpoint: http://x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(bad); err == nil {
		t.Fatal("expected error for manifest without names")
	}
}

func TestRemoteClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file.Close()
		_ = json.NewEncoder(w).Encode(map[string][]float64{"probs": {0.1, 0.9}})
	}))
	defer srv.Close()

	svc := New(NewRemote(&Manifest{Names: []string{"Acne", "Melanoma"}, Endpoint: srv.URL}, srv.Client()))
	got, err := svc.Predict(context.Background(), writeImage(t, []byte("png")), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Melanoma" || got[0].Confidence != 0.9 {
		t.Fatalf("unexpected predictions %+v", got)
	}
}

func TestRemoteClassifyLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string][]float64{"probs": {1}})
	}))
	defer srv.Close()

	svc := New(NewRemote(&Manifest{Names: []string{"Acne", "Melanoma"}, Endpoint: srv.URL}, srv.Client()))
	if _, err := svc.Predict(context.Background(), writeImage(t, []byte("png")), 1); err == nil {
		t.Fatal("expected error on probability count mismatch")
	}
}
