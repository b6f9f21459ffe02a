// Package detector proposes candidate question bounding boxes on rendered
// exam pages. It runs connected-component blob detection over a downsampled
// luminance cell mask; the result is an assistive suggestion for the
// operator, so any failure degrades to an empty list rather than an error.
package detector

import (
	"image"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// Detector suggests question bounding regions on page bitmaps.
// It holds only immutable tuning parameters, so a single Detector is safe
// for concurrent use and repeated calls are idempotent.
type Detector struct {
	params Params
}

// New creates a Detector with the given parameters.
func New(params Params) (*Detector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Detector{params: params}, nil
}

// NewDefault creates a Detector with the tuned default parameters.
func NewDefault() *Detector {
	return &Detector{params: DefaultParams()}
}

// Params returns a copy of the detector's parameters.
func (d *Detector) Params() Params { return d.params }

// Detect proposes candidate question regions for a page bitmap, expressed in
// frame coordinates in reading order. Output rects are within frame bounds,
// non-degenerate, and deduplicated against the merge threshold. The result
// is deterministic for identical inputs.
//
// Pathological input (nil image, degenerate dimensions, invalid frame)
// yields an empty slice, never an error: the suggestion step is optional and
// the operator can always draw regions by hand.
func (d *Detector) Detect(img image.Image, frame utils.FrameSize) []utils.Rect {
	if img == nil || !frame.Valid() {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil
	}

	start := time.Now()
	p := d.params

	working, err := utils.DownsampleToWorking(img, utils.WorkingConstraints{
		MaxWidth:  p.MaxWorkingWidth,
		MinWidth:  p.MinWorkingWidth,
		MinHeight: p.MinWorkingHeight,
	})
	if err != nil {
		slog.Debug("region suggestion skipped", "error", err)
		return nil
	}

	workW := working.Bounds().Dx()
	workH := working.Bounds().Dy()

	mean := utils.MeanLumaSampled(working, p.LumaSampleStride)
	threshold := binarizeThreshold(mean, p)

	mask := buildCellMask(working, threshold, p)
	comps := filterComponents(connectedComponents(mask.dilate()), p)

	workFrame := utils.FrameSize{Width: workW, Height: workH}
	rects := make([]utils.Rect, 0, len(comps))
	for _, c := range comps {
		r := componentRect(c, p.CellSize, workW, workH)
		rects = append(rects, utils.ScaleRect(r, workFrame, frame))
	}

	out := postProcess(rects, frame, p)

	slog.Debug("region suggestion complete",
		"working_size", workFrame,
		"mean_luma", mean,
		"threshold", threshold,
		"components", len(comps),
		"regions", len(out),
		"duration", time.Since(start))
	return out
}
