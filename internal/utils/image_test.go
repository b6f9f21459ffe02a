package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := imaging.New(w, h, c)
	return img
}

func TestDownsampleToWorking(t *testing.T) {
	constraints := WorkingConstraints{MaxWidth: 1200, MinWidth: 360, MinHeight: 480}

	tests := []struct {
		name     string
		w, h     int
		wantW    int
		wantMinH int
	}{
		{name: "wide page shrinks to max width", w: 2400, h: 3200, wantW: 1200},
		{name: "already within bounds unchanged", w: 600, h: 800, wantW: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := uniformImage(tt.w, tt.h, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			out, err := DownsampleToWorking(src, constraints)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
		})
	}

	t.Run("small page raised to working floor", func(t *testing.T) {
		src := uniformImage(200, 260, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		out, err := DownsampleToWorking(src, constraints)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out.Bounds().Dx(), constraints.MinWidth)
		assert.GreaterOrEqual(t, out.Bounds().Dy(), constraints.MinHeight)
	})

	t.Run("nil image rejected", func(t *testing.T) {
		_, err := DownsampleToWorking(nil, constraints)
		assert.Error(t, err)
	})
}

func TestMeanLumaSampled(t *testing.T) {
	white := uniformImage(100, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	assert.InDelta(t, 255.0, MeanLumaSampled(white, 7), 0.5)

	black := uniformImage(100, 100, color.NRGBA{A: 255})
	assert.InDelta(t, 0.0, MeanLumaSampled(black, 7), 0.5)

	// Mid grey lands in the middle regardless of stride.
	grey := uniformImage(64, 64, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	assert.InDelta(t, 128.0, MeanLumaSampled(grey, 3), 1.0)
}

func TestLuma(t *testing.T) {
	assert.InDelta(t, 255.0, Luma(255, 255, 255), 1e-9)
	assert.InDelta(t, 0.0, Luma(0, 0, 0), 1e-9)
	// Green dominates perceived brightness.
	assert.Greater(t, Luma(0, 255, 0), Luma(255, 0, 0))
	assert.Greater(t, Luma(255, 0, 0), Luma(0, 0, 255))
}

func TestCropRect(t *testing.T) {
	src := uniformImage(100, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	got := CropRect(src, Rect{X: 10, Y: 20, Width: 30, Height: 40})
	assert.Equal(t, 30, got.Bounds().Dx())
	assert.Equal(t, 40, got.Bounds().Dy())

	// Empty rect falls back to a minimal blank image instead of panicking.
	blank := CropRect(src, Rect{})
	require.NotNil(t, blank)
	assert.Equal(t, 1, blank.Bounds().Dx())
}
