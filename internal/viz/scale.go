package viz

import (
	"math"

	"github.com/dustin/go-humanize"
)

const (
	// MaxBars is how many leading values the bar view shows.
	MaxBars = 20

	BarFloor = 5.0
	BarScale = 90.0

	labelLimit = 1000
)

// BarHeights maps the first MaxBars values to bar heights in percent:
// log(v+1)/log(max+1) scaled to BarScale, never below BarFloor. When
// every visible value is zero the ratio is zero and bars sit on the floor.
func BarHeights(seq []int64) []float64 {
	vis := seq
	if len(vis) > MaxBars {
		vis = vis[:MaxBars]
	}

	var maxVal int64
	for _, v := range vis {
		if v > maxVal {
			maxVal = v
		}
	}
	denom := math.Log(float64(maxVal) + 1)

	heights := make([]float64, len(vis))
	for i, v := range vis {
		ratio := 0.0
		if denom > 0 {
			ratio = math.Log(float64(v)+1) / denom
		}
		heights[i] = math.Max(BarFloor, ratio*BarScale)
	}
	return heights
}

// BarLabel is the text printed inside a bar.
func BarLabel(v int64) string {
	if v < labelLimit {
		return humanize.Comma(v)
	}
	return "..."
}

// FormatValue renders v with thousands separators.
func FormatValue(v int64) string {
	return humanize.Comma(v)
}

// LogValues returns log10(v+1) for each value, for plotting growth on a
// readable scale.
func LogValues(seq []int64) []float64 {
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = math.Log10(float64(v) + 1)
	}
	return out
}
