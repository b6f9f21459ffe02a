// Package testutil generates synthetic exam page images for tests: white
// page canvases with dark paragraph blocks or rendered text where a printed
// question would sit.
package testutil

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// PageSize is the default synthetic page resolution. Small enough to keep
// tests fast, large enough for the detector's working floor to leave the
// geometry intact.
var PageSize = utils.FrameSize{Width: 600, Height: 800}

// WhitePage creates a uniform white page image.
func WhitePage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	return img
}

// FillBlock paints a solid dark block onto the page, simulating a dense
// printed paragraph.
func FillBlock(img *image.NRGBA, r utils.Rect) {
	rect := image.Rect(r.X, r.Y, r.Right(), r.Bottom()).Intersect(img.Bounds())
	draw.Draw(img, rect, &image.Uniform{color.NRGBA{R: 16, G: 16, B: 16, A: 255}}, image.Point{}, draw.Src)
}

// PageWithBlocks creates a white page with solid dark blocks at the given
// regions.
func PageWithBlocks(w, h int, blocks ...utils.Rect) *image.NRGBA {
	img := WhitePage(w, h)
	for _, b := range blocks {
		FillBlock(img, b)
	}
	return img
}

// DrawParagraph renders wrapped text lines starting at the block's top-left,
// using the fixed 7x13 basicfont. Returns the region actually covered by
// glyphs so tests can assert against it.
func DrawParagraph(img *image.NRGBA, x, y int, lines []string) utils.Rect {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: face,
	}

	lineHeight := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	maxWidth := 0
	for i, line := range lines {
		drawer.Dot = fixed.P(x, y+ascent+i*lineHeight)
		drawer.DrawString(line)
		if w := font.MeasureString(face, line).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}

	return utils.Rect{X: x, Y: y, Width: maxWidth, Height: len(lines) * lineHeight}
}

// NoisyPage creates a white page with faint per-pixel brightness variation,
// simulating scanner noise that must not trigger detections.
func NoisyPage(w, h int) *image.NRGBA {
	img := WhitePage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Deterministic speckle in the 245..255 range.
			v := uint8(245 + (x*31+y*17)%11)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}
