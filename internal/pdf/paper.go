package pdf

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// WritePaper encodes composed page images as PNGs and imports them into a
// single output PDF, one image per page.
func WritePaper(pages []*image.NRGBA, outPath string) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to write to %s", outPath)
	}

	tempDir, err := os.MkdirTemp("", "paperforge-paper-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	files := make([]string, 0, len(pages))
	for i, page := range pages {
		path := filepath.Join(tempDir, fmt.Sprintf("page_%03d.png", i+1))
		if err := writePNG(page, path); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		files = append(files, path)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := api.ImportImagesFile(files, outPath, nil, nil); err != nil {
		return fmt.Errorf("failed to build PDF %s: %w", outPath, err)
	}
	return nil
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path) //nolint:gosec // G304: writing into our own temp dir
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
