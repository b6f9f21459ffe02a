package detector

import "container/list"

// cellComponent is the bounding cell-range of one connected blob in the mask.
type cellComponent struct {
	count int
	minX  int
	minY  int
	maxX  int
	maxY  int
}

// connectedComponents finds 4-connected components in the cell mask via BFS
// and returns the bounding cell-range of each. Scan order is row-major, so
// components come out in a deterministic order for a given mask.
func connectedComponents(mask *cellMask) []cellComponent {
	visited := make([]bool, len(mask.cells))
	var comps []cellComponent

	for cy := 0; cy < mask.height; cy++ {
		for cx := 0; cx < mask.width; cx++ {
			idx := cy*mask.width + cx
			if mask.cells[idx] && !visited[idx] {
				comps = append(comps, componentBFS(mask, visited, cx, cy))
			}
		}
	}
	return comps
}

// componentBFS flood-fills one component starting from a seed cell.
func componentBFS(mask *cellMask, visited []bool, startX, startY int) cellComponent {
	comp := cellComponent{minX: startX, minY: startY, maxX: startX, maxY: startY}

	startIdx := startY*mask.width + startX
	visited[startIdx] = true
	q := list.New()
	q.PushBack(startIdx)

	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue
		}
		cx, cy := ci%mask.width, ci/mask.width

		comp.count++
		if cx < comp.minX {
			comp.minX = cx
		}
		if cy < comp.minY {
			comp.minY = cy
		}
		if cx > comp.maxX {
			comp.maxX = cx
		}
		if cy > comp.maxY {
			comp.maxY = cy
		}

		for _, d := range dirs {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || nx >= mask.width || ny < 0 || ny >= mask.height {
				continue
			}
			ni := ny*mask.width + nx
			if mask.cells[ni] && !visited[ni] {
				visited[ni] = true
				q.PushBack(ni)
			}
		}
	}
	return comp
}

// cellsWide returns the component width in cells.
func (c cellComponent) cellsWide() int { return c.maxX - c.minX + 1 }

// cellsTall returns the component height in cells.
func (c cellComponent) cellsTall() int { return c.maxY - c.minY + 1 }

// filterComponents discards components below the minimum footprint. This
// drops punctuation-sized specks and scanner dust before they become
// suggestion boxes.
func filterComponents(comps []cellComponent, p Params) []cellComponent {
	kept := comps[:0]
	for _, c := range comps {
		if c.count < p.MinCellCount {
			continue
		}
		if c.cellsWide() < p.MinCellSpan || c.cellsTall() < p.MinCellSpan {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
