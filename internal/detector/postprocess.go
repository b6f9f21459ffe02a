package detector

import (
	"math"
	"sort"

	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// componentRect converts a component's bounding cell-range into pixel
// coordinates of the working image, with one cell of padding on each side.
func componentRect(c cellComponent, cell, workW, workH int) utils.Rect {
	r := utils.Rect{
		X:      (c.minX - 1) * cell,
		Y:      (c.minY - 1) * cell,
		Width:  (c.cellsWide() + 2) * cell,
		Height: (c.cellsTall() + 2) * cell,
	}
	return r.Clamp(utils.FrameSize{Width: workW, Height: workH})
}

// postProcess normalizes raw candidate rects into the final suggestion list:
// clamp to frame, drop implausible sizes, sort into reading order, merge
// overlapping boxes, apply the asymmetric expansion, re-sort and cap.
func postProcess(rects []utils.Rect, frame utils.FrameSize, p Params) []utils.Rect {
	rowBand := int(math.Round(p.RowBandFrac * float64(frame.Height)))

	kept := make([]utils.Rect, 0, len(rects))
	for _, r := range rects {
		r = r.Clamp(frame)
		if r.Empty() || !plausibleSize(r, frame, p) {
			continue
		}
		kept = append(kept, r)
	}

	sortReadingOrder(kept, rowBand)
	kept = mergeOverlapping(kept, p.MergeIoU)

	for i, r := range kept {
		kept[i] = expandRect(r, frame, p)
	}

	sortReadingOrder(kept, rowBand)
	if len(kept) > p.MaxRegions {
		kept = kept[:p.MaxRegions]
	}
	return kept
}

// plausibleSize rejects rects too narrow or short to hold a question, and
// rects covering almost the entire page (those are the page itself, not a
// question).
func plausibleSize(r utils.Rect, frame utils.FrameSize, p Params) bool {
	w := float64(r.Width)
	h := float64(r.Height)
	fw := float64(frame.Width)
	fh := float64(frame.Height)

	if w < fw*p.MinWidthFrac || h < fh*p.MinHeightFrac {
		return false
	}
	if w > fw*p.MaxWidthFrac && h > fh*p.MaxHeightFrac {
		return false
	}
	return true
}

// sortReadingOrder sorts rects top-to-bottom, left-to-right within a row band.
func sortReadingOrder(rects []utils.Rect, rowBand int) {
	sort.SliceStable(rects, func(i, j int) bool {
		return utils.ReadingOrderLess(rects[i], rects[j], rowBand)
	})
}

// mergeOverlapping repeatedly replaces pairs whose IoU meets the threshold,
// or where one box fully contains the other, with their union box until no
// such pair remains. Earlier rects absorb later ones, which keeps the pass
// deterministic.
func mergeOverlapping(rects []utils.Rect, iouThreshold float64) []utils.Rect {
	out := make([]utils.Rect, len(rects))
	copy(out, rects)

	merged := true
	for merged {
		merged = false
		for i := 0; i < len(out) && !merged; i++ {
			for j := i + 1; j < len(out); j++ {
				if shouldMerge(out[i], out[j], iouThreshold) {
					out[i] = out[i].Union(out[j])
					out = append(out[:j], out[j+1:]...)
					merged = true
					break
				}
			}
		}
	}
	return out
}

func shouldMerge(a, b utils.Rect, iouThreshold float64) bool {
	if a.Contains(b) || b.Contains(a) {
		return true
	}
	return utils.IoU(a, b) >= iouThreshold
}

// expandRect grows a rect by the configured padding, slightly more below
// than above, and re-clamps to the frame.
func expandRect(r utils.Rect, frame utils.FrameSize, p Params) utils.Rect {
	side := int(math.Round(p.PadSideFrac * float64(frame.Width)))
	top := int(math.Round(p.PadTopFrac * float64(frame.Height)))
	bottom := int(math.Round(p.PadBottomFrac * float64(frame.Height)))

	out := utils.Rect{
		X:      r.X - side,
		Y:      r.Y - top,
		Width:  r.Width + 2*side,
		Height: r.Height + top + bottom,
	}
	return out.Clamp(frame)
}
