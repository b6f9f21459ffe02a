package detector

import (
	"image"

	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// cellMask is a coarse binary ink mask over the working image, one entry per
// fixed-size cell. True marks a cell whose dark-pixel fraction exceeded the
// ink ratio.
type cellMask struct {
	cells  []bool
	width  int
	height int
}

func (m *cellMask) at(cx, cy int) bool {
	if cx < 0 || cx >= m.width || cy < 0 || cy >= m.height {
		return false
	}
	return m.cells[cy*m.width+cx]
}

// binarizeThreshold derives the luminance cutoff separating ink from paper.
// The sampled mean is clamped to a sane range and scaled down so mid-gray
// pixels on a mostly-white page still classify as ink.
func binarizeThreshold(meanLuma float64, p Params) float64 {
	m := meanLuma
	if m < p.ThresholdMin {
		m = p.ThresholdMin
	}
	if m > p.ThresholdMax {
		m = p.ThresholdMax
	}
	return m * p.ThresholdScale
}

// buildCellMask partitions the working image into CellSize x CellSize cells
// and marks a cell as ink when the fraction of sub-threshold pixels inside
// it exceeds InkCellRatio. Counting fractions per cell rather than single
// pixels keeps the mask robust to anti-aliased glyph edges.
func buildCellMask(img *image.NRGBA, threshold float64, p Params) *cellMask {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	cell := p.CellSize

	cw := (w + cell - 1) / cell
	ch := (h + cell - 1) / cell
	mask := &cellMask{cells: make([]bool, cw*ch), width: cw, height: ch}

	dark := make([]int, cw*ch)
	total := make([]int, cw*ch)

	for y := 0; y < h; y++ {
		row := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		cy := y / cell
		for x := 0; x < w; x++ {
			i := row + x*4
			ci := cy*cw + x/cell
			total[ci]++
			if utils.Luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) < threshold {
				dark[ci]++
			}
		}
	}

	for i := range mask.cells {
		if total[i] > 0 && float64(dark[i])/float64(total[i]) > p.InkCellRatio {
			mask.cells[i] = true
		}
	}
	return mask
}

// dilate grows the ink mask by one cell in all eight directions. This
// bridges the small gaps between adjacent text lines and glyph clusters so
// a printed paragraph becomes a single connected blob.
func (m *cellMask) dilate() *cellMask {
	out := &cellMask{cells: make([]bool, len(m.cells)), width: m.width, height: m.height}
	for cy := 0; cy < m.height; cy++ {
		for cx := 0; cx < m.width; cx++ {
			if m.cells[cy*m.width+cx] {
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := cx+dx, cy+dy
						if nx >= 0 && nx < m.width && ny >= 0 && ny < m.height {
							out.cells[ny*m.width+nx] = true
						}
					}
				}
			}
		}
	}
	return out
}
