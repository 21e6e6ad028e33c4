// Command batchpredict classifies every image in a folder and prints the
// top-k labels for each.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sasank-in/skin-disease/internal/classifier"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

func main() {
	modelPath := flag.String("model", "checkpoints/model.yaml", "path to the model manifest")
	input := flag.String("input", "input_images", "folder with input images")
	topK := flag.Int("topk", 3, "number of top predictions to display")
	flag.Parse()

	svc, err := classifier.Open(*modelPath, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background(), svc, *input, *topK, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, svc *classifier.Service, dir string, topK int, out io.Writer) error {
	images, err := listImages(dir)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		fmt.Fprintln(out, "No images found.")
		return nil
	}

	for _, img := range images {
		fmt.Fprintf(out, "\n%s\n", filepath.Base(img))
		preds, err := svc.Predict(ctx, img, topK)
		if err != nil {
			fmt.Fprintf(out, "  error: %v\n", err)
			continue
		}
		for _, p := range preds {
			fmt.Fprintf(out, "  %-20s %6.2f%%\n", p.Label, p.Percent())
		}
	}
	return nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input folder not found: %s", dir)
		}
		return nil, err
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		images = append(images, filepath.Join(dir, e.Name()))
	}
	sort.Strings(images)
	return images, nil
}
