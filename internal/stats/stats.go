// Package stats summarises bean machine histograms and compares them with
// the binomial distribution a clamped walk produces.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type Summary struct {
	Total    int
	Bins     int
	Occupied int
	Mean     float64
	StdDev   float64
	Min      int // lowest occupied bin, -1 when empty
	Max      int // highest occupied bin, -1 when empty
	Mode     int // fullest bin, -1 when empty
	Peak     int
}

// Summarize computes count-weighted moments over bin indices.
func Summarize(counts []int) Summary {
	s := Summary{Bins: len(counts), Min: -1, Max: -1, Mode: -1}

	x := make([]float64, len(counts))
	w := make([]float64, len(counts))
	for i, c := range counts {
		x[i] = float64(i)
		w[i] = float64(c)
		if c == 0 {
			continue
		}
		s.Total += c
		s.Occupied++
		if s.Min < 0 {
			s.Min = i
		}
		s.Max = i
		if c > s.Peak {
			s.Peak = c
			s.Mode = i
		}
	}

	if s.Total == 0 {
		return s
	}

	s.Mean = stat.Mean(x, w)
	if s.Total > 1 {
		// gonum treats weights as frequencies, giving the sample deviation.
		s.StdDev = stat.StdDev(x, w)
	}
	return s
}

// ExpectedStdDev is the spread of an unclamped ±1 walk of the given length.
func ExpectedStdDev(walk int) float64 {
	return math.Sqrt(float64(walk))
}

// CenterOffset is the mean's distance from the board midpoint, relative to
// that midpoint.
func CenterOffset(s Summary, width int) float64 {
	center := float64(width / 2)
	if center == 0 {
		return 0
	}
	return math.Abs(s.Mean-center) / center
}

// NormalFit returns the normal distribution with the histogram's moments.
func NormalFit(s Summary) distuv.Normal {
	sigma := s.StdDev
	if sigma == 0 {
		sigma = math.SmallestNonzeroFloat64
	}
	return distuv.Normal{Mu: s.Mean, Sigma: sigma}
}

// Theoretical is the exact histogram n balls would fill on average: a walk
// of the given length ends 2k-walk bins from the center with binomial
// probability, and clamping folds both tails onto the edge bins.
func Theoretical(n, width, walk int) []float64 {
	if width <= 0 {
		return nil
	}
	out := make([]float64, width)
	center := width / 2
	if walk <= 0 {
		out[max(0, min(center, width-1))] = float64(n)
		return out
	}

	dist := distuv.Binomial{N: float64(walk), P: 0.5}
	for k := 0; k <= walk; k++ {
		bin := max(0, min(center-walk+2*k, width-1))
		out[bin] += float64(n) * dist.Prob(float64(k))
	}
	return out
}

// ChiSquare compares observed counts with expected values over the bins
// expecting at least minExpected balls. It returns the statistic and the
// number of bins used.
func ChiSquare(counts []int, expected []float64, minExpected float64) (float64, int) {
	obs := make([]float64, 0, len(counts))
	exp := make([]float64, 0, len(counts))
	for i, c := range counts {
		if i >= len(expected) || expected[i] <= 0 || expected[i] < minExpected {
			continue
		}
		obs = append(obs, float64(c))
		exp = append(exp, expected[i])
	}
	if len(obs) == 0 {
		return 0, 0
	}
	return stat.ChiSquare(obs, exp), len(obs)
}
