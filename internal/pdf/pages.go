// Package pdf is the boundary to the PDF toolchain: it pulls rasterized page
// images out of exam booklets and assembles composed practice-paper pages
// into an output PDF. Both directions go through pdfcpu.
package pdf

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ExtractPageImages extracts the embedded images of a booklet PDF, grouped
// by page number. Scanned booklets carry one full-page image per page; when
// a page has several, the largest is kept as the page image.
func ExtractPageImages(filename string, pages []int) (map[int]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "paperforge-extract-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	var selected []string
	for _, p := range pages {
		if p < 1 {
			return nil, fmt.Errorf("invalid page number %d", p)
		}
		selected = append(selected, strconv.Itoa(p))
	}

	if err := api.ExtractImagesFile(filename, tempDir, selected, nil); err != nil {
		return nil, fmt.Errorf("failed to extract images from %s: %w", filename, err)
	}

	return collectPageImages(tempDir)
}

// collectPageImages walks the extraction directory and picks the largest
// image per page. pdfcpu names extracted files <base>_<page>_<resource>.<ext>.
func collectPageImages(dir string) (map[int]image.Image, error) {
	result := make(map[int]image.Image)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		page, ok := pageFromFilename(info.Name())
		if !ok {
			return nil
		}
		img, err := loadImage(path)
		if err != nil {
			// Unsupported embedded format; skip rather than fail the page.
			return nil
		}
		if prev, exists := result[page]; !exists || imageArea(img) > imageArea(prev) {
			result[page] = img
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect extracted images: %w", err)
	}
	return result, nil
}

// pageFromFilename parses the page number out of a pdfcpu extract filename.
func pageFromFilename(name string) (int, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, "_")
	// Scan from the right: the page number precedes the resource name.
	for i := len(parts) - 2; i >= 0; i-- {
		if n, err := strconv.Atoi(parts[i]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // G304: reading files pdfcpu just wrote
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	return img, err
}

func imageArea(img image.Image) int {
	b := img.Bounds()
	return b.Dx() * b.Dy()
}

// PageCount returns the number of pages in a PDF file.
func PageCount(filename string) (int, error) {
	n, err := api.PageCountFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count of %s: %w", filename, err)
	}
	return n, nil
}

// SortedPages returns the page numbers present in a page-image map in order.
func SortedPages(images map[int]image.Image) []int {
	pages := make([]int, 0, len(images))
	for p := range images {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
