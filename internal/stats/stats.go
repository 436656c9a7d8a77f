// Package stats provides the numeric primitives used by the aggregation,
// confidence, and narrative layers: robust central-tendency estimators,
// cross-sample outlier detection, ensemble probabilities, and the mapping
// from model spread to a confidence score.
//
// All functions are total: empty and degenerate inputs return fixed
// fallback values rather than NaN.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Comparison selects the predicate used by EnsembleProbability.
type Comparison string

const (
	Greater        Comparison = "gt"
	GreaterOrEqual Comparison = "gte"
	Less           Comparison = "lt"
	LessOrEqual    Comparison = "lte"
)

// Mean returns the arithmetic mean, or 0 for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Median returns the middle value of the sorted input (the average of the
// two middle values for even length), or 0 for empty input.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the population standard deviation (divide by N), or 0
// when there are fewer than two values.
func StdDev(xs []float64) float64 {
	if len(xs) <= 1 {
		return 0
	}
	return stat.PopStdDev(xs, nil)
}

// TrimmedMean returns the mean after trimming a fraction of extreme values
// from each end of the sorted input. For four or more values at least one
// value is always trimmed from each end and at least two values always
// survive, which keeps the estimator robust to a single extreme model even
// at small sample sizes. Fewer than four values fall back to the mean
// (N ≤ 2) or the median (N = 3).
func TrimmedMean(xs []float64, trimFraction float64) float64 {
	n := len(xs)
	switch {
	case n == 0:
		return 0
	case n <= 2:
		return Mean(xs)
	case n == 3:
		return Median(xs)
	}

	trimCount := int(math.Floor(float64(n) * trimFraction))
	if trimCount < 1 {
		trimCount = 1
	}
	maxTrim := (n - 2) / 2
	if trimCount > maxTrim {
		trimCount = maxTrim
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return Mean(sorted[trimCount : n-trimCount])
}

// OutlierIndices returns the indices of values whose absolute z-score,
// computed against the input's own mean and population standard deviation,
// exceeds zThreshold. With two or fewer values, or zero spread, no value
// can be called an outlier and the result is empty.
func OutlierIndices(xs []float64, zThreshold float64) []int {
	if len(xs) <= 2 {
		return nil
	}
	mean := Mean(xs)
	sd := StdDev(xs)
	if sd == 0 {
		return nil
	}

	var outliers []int
	for i, x := range xs {
		if math.Abs((x-mean)/sd) > zThreshold {
			outliers = append(outliers, i)
		}
	}
	return outliers
}

// EnsembleProbability returns the percentage (0-100) of values satisfying
// the comparison against threshold, or 0 for empty input.
func EnsembleProbability(xs []float64, threshold float64, cmp Comparison) float64 {
	if len(xs) == 0 {
		return 0
	}

	matched := 0
	for _, x := range xs {
		switch cmp {
		case Greater:
			if x > threshold {
				matched++
			}
		case GreaterOrEqual:
			if x >= threshold {
				matched++
			}
		case Less:
			if x < threshold {
				matched++
			}
		case LessOrEqual:
			if x <= threshold {
				matched++
			}
		}
	}
	return float64(matched) / float64(len(xs)) * 100
}

// ConfidenceFromSpread maps a spread measure (standard deviation or range)
// onto a confidence score. Spread at or below highThreshold scores 1.0;
// spread at or above lowThreshold scores 0.3; values in between
// interpolate linearly. The 0.3 floor is deliberate: spread alone never
// drives a metric to zero confidence.
func ConfidenceFromSpread(value, highThreshold, lowThreshold float64) float64 {
	if value <= highThreshold {
		return 1.0
	}
	if value >= lowThreshold {
		return 0.3
	}
	return 1.0 - (value-highThreshold)/(lowThreshold-highThreshold)*0.7
}
