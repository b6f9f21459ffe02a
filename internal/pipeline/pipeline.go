// Package pipeline wires the detection and allocation cores to the pool
// store and the PDF boundary: suggesting regions for a page-edit session and
// generating a practice paper from a paper request.
package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/MeKo-Tech/paperforge/internal/allocator"
	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/pdf"
)

// PageSource produces the rasterized page images of one exam booklet.
type PageSource interface {
	PageImage(page int) (image.Image, error)
}

// BookletSource serves the page images extracted from a booklet PDF.
type BookletSource struct {
	images map[int]image.Image
}

// NewBookletSource extracts page images from a booklet PDF up front.
// An empty pages slice extracts all pages.
func NewBookletSource(path string, pages []int) (*BookletSource, error) {
	images, err := pdf.ExtractPageImages(path, pages)
	if err != nil {
		return nil, err
	}
	return &BookletSource{images: images}, nil
}

// NewMapSource wraps an in-memory page-image map, mainly for tests.
func NewMapSource(images map[int]image.Image) *BookletSource {
	return &BookletSource{images: images}
}

// PageImage returns the rasterized image of one page.
func (s *BookletSource) PageImage(page int) (image.Image, error) {
	img, ok := s.images[page]
	if !ok {
		return nil, fmt.Errorf("no image for page %d", page)
	}
	return img, nil
}

// Pages returns the available page numbers in order.
func (s *BookletSource) Pages() []int { return pdf.SortedPages(s.images) }

// PaperRequest describes one practice-paper generation run.
type PaperRequest struct {
	Exam    string             `json:"exam"`
	Total   int                `json:"total"`
	Weights map[string]float64 `json:"weights"`
	Seed    int64              `json:"seed"`
	Output  string             `json:"output"`
	Layout  pdf.LayoutOptions  `json:"layout"`
}

// Validate checks the request before any work starts.
func (r PaperRequest) Validate() error {
	if r.Exam == "" {
		return errors.New("paper request: exam identifier is required")
	}
	if r.Total < 1 {
		return fmt.Errorf("paper request: total must be positive, got %d", r.Total)
	}
	if r.Output == "" {
		return errors.New("paper request: output path is required")
	}
	return nil
}

// PaperResult summarizes a generated paper.
type PaperResult struct {
	Exam   string            `json:"exam"`
	Counts allocator.Result  `json:"counts"`
	Picks  []exam.Candidate  `json:"picks"`
	Pages  int               `json:"pages"`
	Seed   int64             `json:"seed"`
	Output string            `json:"output"`
}

// ProgressFunc receives coarse progress while a paper is generated.
// done/total count units within the stage. May be nil.
type ProgressFunc func(stage string, done, total int)

// Generation stages reported through ProgressFunc.
const (
	StageAllocate = "allocate"
	StageCrop     = "crop"
	StageCompose  = "compose"
	StageWrite    = "write"
)
