package render

import "math"

// Dashes splits the horizontal span [x0, x1] into dash segments of length
// dash separated by gap. The last dash is truncated at x1.
func Dashes(x0, x1, dash, gap float32) [][2]float32 {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if dash <= 0 {
		return [][2]float32{{x0, x1}}
	}
	if gap < 0 {
		gap = 0
	}
	var out [][2]float32
	for x := x0; x < x1; x += dash + gap {
		out = append(out, [2]float32{x, min(x+dash, x1)})
	}
	return out
}

// Ticks returns round axis values in [lo, hi], about n of them, spaced by 1,
// 2 or 5 times a power of ten.
func Ticks(lo, hi float64, n int) []float64 {
	if !(hi > lo) || n <= 0 {
		return nil
	}
	step := niceStep((hi - lo) / float64(n))
	start := math.Ceil(lo/step) * step
	var out []float64
	for v := start; v <= hi+step*1e-9; v += step {
		// snap away accumulated drift so labels print cleanly
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	switch f := raw / base; {
	case f <= 1:
		return base
	case f <= 2:
		return 2 * base
	case f <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}
