package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Downsample sums runs of adjacent bins so at most n values remain. Summing
// pairs also hides the walk's parity gaps, where every other bin is empty.
func Downsample(counts []int, n int) []float64 {
	if len(counts) == 0 || n <= 0 {
		return nil
	}

	group := (len(counts) + n - 1) / n
	out := make([]float64, 0, (len(counts)+group-1)/group)
	for start := 0; start < len(counts); start += group {
		end := min(start+group, len(counts))
		total := 0
		for _, c := range counts[start:end] {
			total += c
		}
		out = append(out, float64(total))
	}
	return out
}

// PlotHistogram draws counts as an ASCII chart of the given size.
func PlotHistogram(counts []int, width, height int, caption string) string {
	data := Downsample(counts, width)
	if len(data) == 0 {
		return ""
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
