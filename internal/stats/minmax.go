package stats

// MinMax folds over all values, nothing excluded. It returns (0, 0) for empty input.
func MinMax(data []float64) (min, max float64) {
	for i, v := range data {
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return min, max
}
