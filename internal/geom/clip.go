package geom

// ClipBand clips the ring to the horizontal band lo <= y <= hi using
// Sutherland-Hodgman against the two edges. The result may be empty.
func ClipBand(r Ring, lo, hi float64) Ring {
	out := clipHalf(r, func(p Point) bool { return p.Y >= lo }, lo)
	return clipHalf(out, func(p Point) bool { return p.Y <= hi }, hi)
}

func clipHalf(r Ring, inside func(Point) bool, y float64) Ring {
	n := len(r)
	if n == 0 {
		return nil
	}
	out := make(Ring, 0, n+2)
	prev := r[n-1]
	for _, cur := range r {
		switch {
		case inside(cur) && !inside(prev):
			out = append(out, crossY(prev, cur, y), cur)
		case inside(cur):
			out = append(out, cur)
		case inside(prev):
			out = append(out, crossY(prev, cur, y))
		}
		prev = cur
	}
	return out
}

func crossY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + t*(b.X-a.X), Y: y}
}
