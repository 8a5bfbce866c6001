// Package stats holds the statistics behind a benchmark summary: robust outlier
// detection, extrema, and the mean/median/standard deviation of a set of times.
//
// All values are plain float64 seconds.
package stats

import (
	"math"
	"slices"

	"github.com/gonum/stat"
)

const (
	// OUTLIER_THRESHOLD is the modified z-score above which a sample counts as an outlier.
	OUTLIER_THRESHOLD = 3.5
	// MIN_OUTLIER_SAMPLES is the smallest sample count outlier detection runs on.
	MIN_OUTLIER_SAMPLES = 3

	// scales the MAD so the score is comparable to a standard z-score
	madConsistency = 0.6745
	// used instead of the MAD when more than half the samples are identical
	meanADConsistency = 1.253314
)

// Mean returns the arithmetic mean of data, which must not be empty.
// The result is clamped to the data's range so rounding can never push it outside.
func Mean(data []float64) float64 {
	lo, hi := MinMax(data)
	if lo == hi {
		return lo
	}
	return math.Min(math.Max(stat.Mean(data, nil), lo), hi)
}

// StdDev returns the sample standard deviation of data, or nil for fewer than two values.
func StdDev(data []float64) *float64 {
	if len(data) < 2 {
		return nil
	}
	var sd float64
	if lo, hi := MinMax(data); lo != hi {
		sd = stat.StdDev(data, nil)
	}
	return &sd
}

// Median returns the median of data without reordering it. For an even count it is
// the mean of the two middle values.
func Median(data []float64) float64 {
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// calculates the median absolute deviation of data
func calculateMAD(data []float64, median float64) float64 {
	absoluteDeviations := make([]float64, len(data))
	for i, value := range data {
		absoluteDeviations[i] = math.Abs(value - median)
	}
	return Median(absoluteDeviations)
}

// calculates the mean absolute deviation of data around the median
func calculateMeanAD(data []float64, median float64) float64 {
	var sum float64
	for _, value := range data {
		sum += math.Abs(value - median)
	}
	return sum / float64(len(data))
}

// ModifiedZScores returns the signed modified z-score of every value.
// Scores are all zero when the data has no spread at all.
func ModifiedZScores(data []float64) []float64 {
	scores := make([]float64, len(data))
	if len(data) == 0 {
		return scores
	}
	median := Median(data)
	mad := calculateMAD(data, median)

	if mad == 0 {
		meanAD := calculateMeanAD(data, median)
		if meanAD == 0 {
			return scores
		}
		for i, value := range data {
			scores[i] = (value - median) / (meanADConsistency * meanAD)
		}
		return scores
	}

	for i, value := range data {
		scores[i] = madConsistency * (value - median) / mad
	}
	return scores
}

// OutlierMask flags every value whose absolute modified z-score exceeds
// OUTLIER_THRESHOLD. Fewer than MIN_OUTLIER_SAMPLES values are never flagged.
func OutlierMask(data []float64) []bool {
	mask := make([]bool, len(data))
	if len(data) < MIN_OUTLIER_SAMPLES {
		return mask
	}
	for i, z := range ModifiedZScores(data) {
		mask[i] = math.Abs(z) > OUTLIER_THRESHOLD
	}
	return mask
}

// DetectOutliers splits samples into retained values and outliers, both in input order.
// Detection is repeated on the retained values until a pass flags nothing, so calling
// it again on retained never removes anything more.
func DetectOutliers(samples []float64) (retained, outliers []float64) {
	keep := make([]bool, len(samples))
	for i := range keep {
		keep[i] = true
	}

	for {
		indices := make([]int, 0, len(samples))
		current := make([]float64, 0, len(samples))
		for i, v := range samples {
			if keep[i] {
				indices = append(indices, i)
				current = append(current, v)
			}
		}

		removed := false
		for j, flagged := range OutlierMask(current) {
			if flagged {
				keep[indices[j]] = false
				removed = true
			}
		}
		if !removed {
			break
		}
	}

	for i, v := range samples {
		if keep[i] {
			retained = append(retained, v)
		} else {
			outliers = append(outliers, v)
		}
	}
	return retained, outliers
}
