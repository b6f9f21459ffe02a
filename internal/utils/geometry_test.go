package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectClamp(t *testing.T) {
	frame := FrameSize{Width: 100, Height: 200}

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{
			name: "inside frame untouched",
			in:   Rect{X: 10, Y: 20, Width: 30, Height: 40},
			want: Rect{X: 10, Y: 20, Width: 30, Height: 40},
		},
		{
			name: "negative origin clipped",
			in:   Rect{X: -5, Y: -10, Width: 30, Height: 40},
			want: Rect{X: 0, Y: 0, Width: 25, Height: 30},
		},
		{
			name: "overhanging edges clipped",
			in:   Rect{X: 90, Y: 190, Width: 30, Height: 40},
			want: Rect{X: 90, Y: 190, Width: 10, Height: 10},
		},
		{
			name: "entirely outside collapses to empty",
			in:   Rect{X: 150, Y: 250, Width: 10, Height: 10},
			want: Rect{X: 100, Y: 200, Width: 0, Height: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp(frame))
		})
	}
}

func TestIoU(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{
			name: "identical",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			want: 1.0,
		},
		{
			name: "disjoint",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 20, Y: 20, Width: 10, Height: 10},
			want: 0.0,
		},
		{
			name: "half overlap",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 5, Y: 0, Width: 10, Height: 10},
			want: 50.0 / 150.0,
		},
		{
			name: "touching edges",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 10, Y: 0, Width: 10, Height: 10},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, IoU(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, IoU(tt.b, tt.a), 1e-9, "IoU must be symmetric")
		})
	}
}

func TestUnionAndContains(t *testing.T) {
	a := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	b := Rect{X: 40, Y: 5, Width: 10, Height: 10}

	u := a.Union(b)
	assert.Equal(t, Rect{X: 10, Y: 5, Width: 40, Height: 25}, u)
	assert.True(t, u.Contains(a))
	assert.True(t, u.Contains(b))
	assert.False(t, a.Contains(b))
	assert.True(t, a.Contains(a), "a rect contains itself")
}

func TestReadingOrderLess(t *testing.T) {
	band := 12

	// Same row band: left-to-right wins.
	left := Rect{X: 10, Y: 100, Width: 50, Height: 30}
	right := Rect{X: 200, Y: 108, Width: 50, Height: 30}
	assert.True(t, ReadingOrderLess(left, right, band))
	assert.False(t, ReadingOrderLess(right, left, band))

	// Different rows: top-to-bottom wins regardless of x.
	top := Rect{X: 300, Y: 50, Width: 50, Height: 30}
	bottom := Rect{X: 10, Y: 400, Width: 50, Height: 30}
	assert.True(t, ReadingOrderLess(top, bottom, band))
	assert.False(t, ReadingOrderLess(bottom, top, band))
}

func TestScaleRect(t *testing.T) {
	from := FrameSize{Width: 100, Height: 100}
	to := FrameSize{Width: 200, Height: 400}

	got := ScaleRect(Rect{X: 10, Y: 10, Width: 50, Height: 25}, from, to)
	assert.Equal(t, Rect{X: 20, Y: 40, Width: 100, Height: 100}, got)

	// Tiny rects survive scaling down with at least 1x1.
	small := ScaleRect(Rect{X: 50, Y: 50, Width: 1, Height: 1}, FrameSize{Width: 1000, Height: 1000}, FrameSize{Width: 10, Height: 10})
	assert.False(t, small.Empty())

	// Invalid frames produce an empty rect.
	assert.True(t, ScaleRect(Rect{X: 1, Y: 1, Width: 5, Height: 5}, FrameSize{}, to).Empty())
}
