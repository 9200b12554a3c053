package geom

import (
	"slices"
)

// UnionRects returns the exterior ring of every connected component of the
// union of rects. Holes are filled. Rectangles that only touch at a corner are
// separate components. Components are ordered by their lowest, then leftmost,
// vertex.
//
// The union is computed on the grid formed by every distinct rectangle edge,
// which is exact for axis-aligned input.
func UnionRects(rects []Rect) []Ring {
	g := newCellGrid(rects)
	if g == nil {
		return nil
	}
	g.fillHoles()
	labels, count := g.components()

	rings := make([]Ring, 0, count)
	for c := 1; c <= count; c++ {
		if ring := g.trace(labels, c); len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	slices.SortFunc(rings, func(a, b Ring) int {
		pa, pb := a[0], b[0]
		switch {
		case pa.Y < pb.Y:
			return -1
		case pa.Y > pb.Y:
			return 1
		case pa.X < pb.X:
			return -1
		case pa.X > pb.X:
			return 1
		}
		return 0
	})
	return rings
}

// cellGrid is a coordinate-compressed occupancy grid padded by one empty cell
// on every side. Cell (i, j) spans xs[i-1]..xs[i] and ys[j-1]..ys[j].
type cellGrid struct {
	xs, ys []float64
	w, h   int
	filled []bool
}

func newCellGrid(rects []Rect) *cellGrid {
	var xs, ys []float64
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		max := r.Max()
		xs = append(xs, r.Min.X, max.X)
		ys = append(ys, r.Min.Y, max.Y)
	}
	if len(xs) == 0 {
		return nil
	}
	slices.Sort(xs)
	slices.Sort(ys)
	xs = slices.Compact(xs)
	ys = slices.Compact(ys)

	g := &cellGrid{xs: xs, ys: ys, w: len(xs) + 1, h: len(ys) + 1}
	g.filled = make([]bool, g.w*g.h)
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		max := r.Max()
		i0, _ := slices.BinarySearch(xs, r.Min.X)
		i1, _ := slices.BinarySearch(xs, max.X)
		j0, _ := slices.BinarySearch(ys, r.Min.Y)
		j1, _ := slices.BinarySearch(ys, max.Y)
		for j := j0 + 1; j <= j1; j++ {
			for i := i0 + 1; i <= i1; i++ {
				g.filled[j*g.w+i] = true
			}
		}
	}
	return g
}

func (g *cellGrid) at(i, j int) bool {
	if i < 0 || j < 0 || i >= g.w || j >= g.h {
		return false
	}
	return g.filled[j*g.w+i]
}

// fillHoles marks every empty cell that cannot reach the padding through
// edge-adjacent empty cells as filled.
func (g *cellGrid) fillHoles() {
	outside := make([]bool, len(g.filled))
	queue := []int{0}
	outside[0] = true
	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		i, j := idx%g.w, idx/g.w
		for _, n := range [4][2]int{{i - 1, j}, {i + 1, j}, {i, j - 1}, {i, j + 1}} {
			ni, nj := n[0], n[1]
			if ni < 0 || nj < 0 || ni >= g.w || nj >= g.h {
				continue
			}
			nIdx := nj*g.w + ni
			if outside[nIdx] || g.filled[nIdx] {
				continue
			}
			outside[nIdx] = true
			queue = append(queue, nIdx)
		}
	}
	for idx := range g.filled {
		if !outside[idx] {
			g.filled[idx] = true
		}
	}
}

// components labels edge-connected filled cells with 1..count.
func (g *cellGrid) components() ([]int, int) {
	labels := make([]int, len(g.filled))
	count := 0
	for start := range g.filled {
		if !g.filled[start] || labels[start] != 0 {
			continue
		}
		count++
		labels[start] = count
		queue := []int{start}
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			i, j := idx%g.w, idx/g.w
			for _, n := range [4][2]int{{i - 1, j}, {i + 1, j}, {i, j - 1}, {i, j + 1}} {
				if !g.at(n[0], n[1]) {
					continue
				}
				nIdx := n[1]*g.w + n[0]
				if labels[nIdx] != 0 {
					continue
				}
				labels[nIdx] = count
				queue = append(queue, nIdx)
			}
		}
	}
	return labels, count
}

// trace walks the boundary of component c counter-clockwise, keeping the
// interior on the left, and returns the ring with collinear vertices removed.
func (g *cellGrid) trace(labels []int, c int) Ring {
	// Vertex (i, j) sits at the lower-left corner of cell (i, j).
	vw := g.w + 1
	next := make(map[int]int)
	start := -1
	addEdge := func(fi, fj, ti, tj int) {
		from := fj*vw + fi
		if _, ok := next[from]; ok {
			return
		}
		next[from] = tj*vw + ti
		if start < 0 || from < start {
			start = from
		}
	}
	for idx, label := range labels {
		if label != c {
			continue
		}
		i, j := idx%g.w, idx/g.w
		if !g.at(i, j-1) {
			addEdge(i, j, i+1, j)
		}
		if !g.at(i+1, j) {
			addEdge(i+1, j, i+1, j+1)
		}
		if !g.at(i, j+1) {
			addEdge(i+1, j+1, i, j+1)
		}
		if !g.at(i-1, j) {
			addEdge(i, j+1, i, j)
		}
	}
	if start < 0 {
		return nil
	}

	var verts [][2]int
	v := start
	for steps := 0; steps <= len(next); steps++ {
		verts = append(verts, [2]int{v % vw, v / vw})
		n, ok := next[v]
		if !ok || n == start {
			break
		}
		v = n
	}

	ring := make(Ring, 0, len(verts))
	n := len(verts)
	for k := 0; k < n; k++ {
		prev := verts[(k+n-1)%n]
		cur := verts[k]
		nxt := verts[(k+1)%n]
		if (prev[0] == cur[0] && cur[0] == nxt[0]) || (prev[1] == cur[1] && cur[1] == nxt[1]) {
			continue
		}
		ring = append(ring, Point{X: g.xs[cur[0]-1], Y: g.ys[cur[1]-1]})
	}
	return ring
}
