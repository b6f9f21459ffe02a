package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ImageProcessingError represents errors that can occur during image processing.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing error in %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// WorkingConstraints bounds the resolution the detector operates at.
type WorkingConstraints struct {
	MaxWidth  int
	MinWidth  int
	MinHeight int
}

// DownsampleToWorking resizes an image into the detector's working resolution:
// width capped at MaxWidth preserving aspect ratio, with a floor of
// MinWidth x MinHeight so very small inputs still produce a usable grid.
// Uses box resampling, which averages rather than rings on document scans.
func DownsampleToWorking(img image.Image, c WorkingConstraints) (*image.NRGBA, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "downsample", Err: errors.New("input image is nil")}
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 1 || h < 1 {
		return nil, &ImageProcessingError{Operation: "downsample", Err: fmt.Errorf("invalid image dimensions %dx%d", w, h)}
	}

	scale := 1.0
	if c.MaxWidth > 0 && w > c.MaxWidth {
		scale = float64(c.MaxWidth) / float64(w)
	}
	if c.MinWidth > 0 {
		if s := float64(c.MinWidth) / float64(w); s > scale {
			scale = s
		}
	}
	if c.MinHeight > 0 {
		if s := float64(c.MinHeight) / float64(h); s > scale {
			scale = s
		}
	}

	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	if nw == w && nh == h {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, nw, nh, imaging.Box), nil
}

// Luma returns the perceptual brightness of an 8-bit RGB sample using the
// standard BT.601 weighting.
func Luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// MeanLumaSampled estimates the global mean luminance by sampling every
// stride-th pixel in both directions. Sparse sampling trades a little
// accuracy for a large cost reduction on full page scans.
func MeanLumaSampled(img *image.NRGBA, stride int) float64 {
	if img == nil {
		return 0
	}
	if stride < 1 {
		stride = 1
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var sum float64
	var n int
	for y := 0; y < h; y += stride {
		row := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < w; x += stride {
			i := row + x*4
			sum += Luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CropRect crops an image to the given Rect, clamped to the image bounds.
func CropRect(img image.Image, r Rect) image.Image {
	bounds := img.Bounds()
	rect := image.Rect(
		bounds.Min.X+r.X,
		bounds.Min.Y+r.Y,
		bounds.Min.X+r.Right(),
		bounds.Min.Y+r.Bottom(),
	).Intersect(bounds)
	if rect.Empty() {
		return imaging.New(1, 1, color.White)
	}
	return imaging.Crop(img, rect)
}

// DrawRectOutline draws an axis-aligned rectangle outline into dst.
func DrawRectOutline(dst *image.NRGBA, r Rect, col color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	rect := image.Rect(r.X, r.Y, r.Right(), r.Bottom()).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	for t := 0; t < thickness; t++ {
		yTop := rect.Min.Y + t
		yBot := rect.Max.Y - 1 - t
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, yTop, col)
			dst.Set(x, yBot, col)
		}
		xLeft := rect.Min.X + t
		xRight := rect.Max.X - 1 - t
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.Set(xLeft, y, col)
			dst.Set(xRight, y, col)
		}
	}
}
