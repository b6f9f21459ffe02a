package utils

import "fmt"

// Rect is an axis-aligned rectangle in integer pixel coordinates of some
// reference frame. Rects are value types; transforms return a new Rect.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// FrameSize describes the reference frame a Rect is expressed in.
type FrameSize struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// DefaultFrame is the reference page canvas used for stored question regions,
// matching an A4 page rasterized at 300 DPI.
var DefaultFrame = FrameSize{Width: 2481, Height: 3508}

// Valid reports whether the frame has positive dimensions.
func (f FrameSize) Valid() bool { return f.Width > 0 && f.Height > 0 }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Right returns the exclusive right edge coordinate.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge coordinate.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns the rectangle area in square pixels.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle has no positive extent.
func (r Rect) Empty() bool { return r.Width < 1 || r.Height < 1 }

// Clamp returns the rectangle clipped to the frame bounds. A rectangle
// entirely outside the frame clamps to an empty Rect.
func (r Rect) Clamp(f FrameSize) Rect {
	x1 := clampInt(r.X, 0, f.Width)
	y1 := clampInt(r.Y, 0, f.Height)
	x2 := clampInt(r.Right(), 0, f.Width)
	y2 := clampInt(r.Bottom(), 0, f.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Contains reports whether r fully contains other.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	x1 := minInt(r.X, other.X)
	y1 := minInt(r.Y, other.Y)
	x2 := maxInt(r.Right(), other.Right())
	y2 := maxInt(r.Bottom(), other.Bottom())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersect returns the overlapping region of r and other, or an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x1 := maxInt(r.X, other.X)
	y1 := maxInt(r.Y, other.Y)
	x2 := minInt(r.Right(), other.Right())
	y2 := minInt(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// IoU computes intersection-over-union of two rectangles.
// Disjoint rectangles score 0, identical rectangles score 1.
func IoU(a, b Rect) float64 {
	inter := a.Intersect(b).Area()
	if inter == 0 {
		return 0
	}
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// ReadingOrderLess orders rectangles top-to-bottom, then left-to-right within
// a horizontal band of the given tolerance (same "row" of the page).
func ReadingOrderLess(a, b Rect, rowBand int) bool {
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dy <= rowBand {
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	}
	return a.Y < b.Y
}

// ScaleRect maps a rectangle from one frame into another, rounding to the
// nearest pixel and preserving a minimum 1x1 extent for non-empty inputs.
func ScaleRect(r Rect, from, to FrameSize) Rect {
	if !from.Valid() || !to.Valid() {
		return Rect{}
	}
	sx := float64(to.Width) / float64(from.Width)
	sy := float64(to.Height) / float64(from.Height)
	out := Rect{
		X:      roundInt(float64(r.X) * sx),
		Y:      roundInt(float64(r.Y) * sy),
		Width:  roundInt(float64(r.Width) * sx),
		Height: roundInt(float64(r.Height) * sy),
	}
	if !r.Empty() {
		if out.Width < 1 {
			out.Width = 1
		}
		if out.Height < 1 {
			out.Height = 1
		}
	}
	return out.Clamp(to)
}

func roundInt(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
