package benchmark

import (
	"cmp"
	"math"
	"slices"
)

// AnnotatedResult is a result compared to the fastest result of its batch.
type AnnotatedResult struct {
	Result        *Result
	RelativeSpeed float64
	// RelativeSpeedStdDev is nil unless both this and the fastest result have a
	// standard deviation.
	RelativeSpeedStdDev *float64
	IsFastest           bool
}

// fastestIndex returns the index of the first result with the smallest mean.
func fastestIndex(results []*Result) int {
	fastest := 0
	for i, r := range results {
		if r.Mean < results[fastest].Mean {
			fastest = i
		}
	}
	return fastest
}

// ComputeRelativeSpeed compares every result to the fastest one. The second return
// value is false when there is nothing to compare against: no results, or a fastest
// mean of exactly zero. Results keep their input order.
func ComputeRelativeSpeed(results []*Result) ([]AnnotatedResult, bool) {
	if len(results) == 0 {
		return nil, false
	}
	fastestIdx := fastestIndex(results)
	fastest := results[fastestIdx]
	if fastest.Mean == 0 {
		return nil, false
	}

	annotated := make([]AnnotatedResult, len(results))
	for i, result := range results {
		ratio := result.Mean / fastest.Mean
		if i == fastestIdx {
			ratio = 1
		}

		var ratioStdDev *float64
		if result.StdDev != nil && fastest.StdDev != nil && result.Mean != 0 {
			sd := ratio * math.Sqrt(
				math.Pow(*result.StdDev/result.Mean, 2)+math.Pow(*fastest.StdDev/fastest.Mean, 2),
			)
			ratioStdDev = &sd
		}

		annotated[i] = AnnotatedResult{
			Result:              result,
			RelativeSpeed:       ratio,
			RelativeSpeedStdDev: ratioStdDev,
			IsFastest:           i == fastestIdx,
		}
	}
	return annotated, true
}

// SortByMean orders results fastest first. Ties keep their input order.
func SortByMean(annotated []AnnotatedResult) {
	slices.SortStableFunc(annotated, func(a, b AnnotatedResult) int {
		return cmp.Compare(a.Result.Mean, b.Result.Mean)
	})
}
