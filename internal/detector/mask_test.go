package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/paperforge/internal/testutil"
	"github.com/MeKo-Tech/paperforge/internal/utils"
)

// maskFromRows builds a cellMask from a string grid, '#' marking ink cells.
func maskFromRows(rows ...string) *cellMask {
	h := len(rows)
	w := len(rows[0])
	m := &cellMask{cells: make([]bool, w*h), width: w, height: h}
	for y, row := range rows {
		for x, c := range row {
			m.cells[y*w+x] = c == '#'
		}
	}
	return m
}

func TestBuildCellMask(t *testing.T) {
	p := DefaultParams()

	// A 64x64 page with a dark 24x24 block starting at a cell boundary.
	img := testutil.PageWithBlocks(64, 64, utils.Rect{X: 16, Y: 16, Width: 24, Height: 24})
	mask := buildCellMask(img, 150, p)

	require.Equal(t, 8, mask.width)
	require.Equal(t, 8, mask.height)

	assert.True(t, mask.at(2, 2), "block interior is ink")
	assert.True(t, mask.at(4, 4), "block edge cells are ink")
	assert.False(t, mask.at(0, 0), "white corner is not ink")
	assert.False(t, mask.at(7, 7))
}

func TestBuildCellMaskAllWhite(t *testing.T) {
	mask := buildCellMask(testutil.WhitePage(64, 64), 150, DefaultParams())
	for _, cell := range mask.cells {
		assert.False(t, cell)
	}
}

func TestCellMaskAtOutOfBounds(t *testing.T) {
	m := maskFromRows("##", "##")
	assert.False(t, m.at(-1, 0))
	assert.False(t, m.at(0, -1))
	assert.False(t, m.at(2, 0))
	assert.False(t, m.at(0, 2))
	assert.True(t, m.at(1, 1))
}

func TestDilate(t *testing.T) {
	m := maskFromRows(
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	d := m.dilate()

	// All eight neighbours of the seed turn on.
	for cy := 1; cy <= 3; cy++ {
		for cx := 1; cx <= 3; cx++ {
			assert.True(t, d.at(cx, cy), "cell %d,%d", cx, cy)
		}
	}
	assert.False(t, d.at(0, 0))
	assert.False(t, d.at(4, 2))
}

func TestDilateJoinsDiagonalNeighbours(t *testing.T) {
	m := maskFromRows(
		"#...",
		".#..",
		"....",
	)
	comps := connectedComponents(m.dilate())
	assert.Len(t, comps, 1, "dilation bridges diagonal cells into one component")
}

func TestConnectedComponents(t *testing.T) {
	m := maskFromRows(
		"##..##",
		"##..##",
		"......",
		"...###",
	)
	comps := connectedComponents(m)
	require.Len(t, comps, 3)

	// Row-major discovery order.
	assert.Equal(t, cellComponent{count: 4, minX: 0, minY: 0, maxX: 1, maxY: 1}, comps[0])
	assert.Equal(t, cellComponent{count: 4, minX: 4, minY: 0, maxX: 5, maxY: 1}, comps[1])
	assert.Equal(t, cellComponent{count: 3, minX: 3, minY: 3, maxX: 5, maxY: 3}, comps[2])
}

func TestConnectedComponentsDiagonalIsSeparate(t *testing.T) {
	m := maskFromRows(
		"#.",
		".#",
	)
	comps := connectedComponents(m)
	assert.Len(t, comps, 2, "4-connectivity does not join diagonals")
}

func TestFilterComponents(t *testing.T) {
	p := DefaultParams()

	comps := []cellComponent{
		{count: 12, minX: 0, minY: 0, maxX: 5, maxY: 2},  // keep
		{count: 3, minX: 0, minY: 0, maxX: 2, maxY: 1},   // too few cells
		{count: 10, minX: 0, minY: 0, maxX: 9, maxY: 0},  // one cell tall
		{count: 10, minX: 4, minY: 0, maxX: 4, maxY: 9},  // one cell wide
	}
	got := filterComponents(comps, p)
	require.Len(t, got, 1)
	assert.Equal(t, comps[0], got[0])
}
