package visualization

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// maxBins bounds the automatic bin count
const maxBins = 200

// AutoBins picks a histogram bin count for values: the narrower of the
// Sturges and Freedman-Diaconis bin widths over the data range. Values must
// be free of NaN.
func AutoBins(values []float64) int {
	n := len(values)
	if n == 0 {
		return 1
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	span := sorted[n-1] - sorted[0]
	if span == 0 {
		return 1
	}

	width := span / (math.Log2(float64(n)) + 1)

	iqr := stat.Quantile(0.75, stat.LinInterp, sorted, nil) - stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	if fd := 2 * iqr * math.Pow(float64(n), -1.0/3.0); fd > 0 && fd < width {
		width = fd
	}

	bins := int(math.Ceil(span / width))
	if bins < 1 {
		bins = 1
	}
	if bins > maxBins {
		bins = maxBins
	}
	return bins
}

// ScottBandwidth is the Gaussian kernel bandwidth std * n^(-1/5).
// It is zero when fewer than two values are given or they do not vary.
func ScottBandwidth(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	std := stat.StdDev(values, nil)
	if math.IsNaN(std) || std == 0 {
		return 0
	}
	return std * math.Pow(float64(len(values)), -0.2)
}

// KDE returns a Gaussian kernel density estimate over values with bandwidth h.
// The returned function integrates to one.
func KDE(values []float64, h float64) func(float64) float64 {
	n := float64(len(values))
	norm := 1 / (n * h * math.Sqrt(2*math.Pi))
	return func(x float64) float64 {
		var sum float64
		for _, v := range values {
			z := (x - v) / h
			sum += math.Exp(-0.5 * z * z)
		}
		return sum * norm
	}
}
