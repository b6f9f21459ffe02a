package pipeline

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	// Page exports occasionally arrive as BMP screenshots.
	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/paperforge/internal/detector"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// Suggester runs the region detector for page-edit sessions, translating
// results into the reference page frame the pool store uses.
type Suggester struct {
	det   *detector.Detector
	frame utils.FrameSize
}

// NewSuggester creates a Suggester targeting the given reference frame.
// A zero frame falls back to the default page canvas.
func NewSuggester(det *detector.Detector, frame utils.FrameSize) *Suggester {
	if !frame.Valid() {
		frame = utils.DefaultFrame
	}
	return &Suggester{det: det, frame: frame}
}

// Frame returns the reference frame suggestions are expressed in.
func (s *Suggester) Frame() utils.FrameSize { return s.frame }

// Suggest proposes question regions for a page image.
func (s *Suggester) Suggest(img image.Image) []utils.Rect {
	return s.det.Detect(img, s.frame)
}

// SuggestFile decodes a page image file and proposes question regions.
func (s *Suggester) SuggestFile(path string) ([]utils.Rect, image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // G304: user-provided page image path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open page image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode page image %s: %w", path, err)
	}
	return s.det.Detect(img, s.frame), img, nil
}
