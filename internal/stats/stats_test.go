package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(value float64, n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = value
	}
	return data
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4}, 4},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.data); got != tt.want {
				t.Errorf("Median() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotReorder(t *testing.T) {
	data := []float64{3, 1, 2}
	Median(data)
	if !reflect.DeepEqual(data, []float64{3, 1, 2}) {
		t.Errorf("Median() reordered its input: %v", data)
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		min, max float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.5}, 0.5, 0.5},
		{"mixed", []float64{0.3, 0.1, 0.9, 0.2}, 0.1, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := MinMax(tt.data)
			if lo != tt.min || hi != tt.max {
				t.Errorf("MinMax() = (%v, %v), want (%v, %v)", lo, hi, tt.min, tt.max)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	assert.Nil(t, StdDev(nil))
	assert.Nil(t, StdDev([]float64{1}))

	sd := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NotNil(t, sd)
	// sample standard deviation, n-1 in the denominator
	assert.InDelta(t, 2.138, *sd, 1e-3)
}

func TestIdenticalSamples(t *testing.T) {
	for _, threshold := range []int{3, 10, 50} {
		data := repeat(0.0123, threshold)

		sd := StdDev(data)
		require.NotNil(t, sd)
		assert.Equal(t, 0.0, *sd)
		assert.Equal(t, 0.0123, Mean(data))

		retained, outliers := DetectOutliers(data)
		assert.Empty(t, outliers)
		assert.Equal(t, data, retained)
	}
}

func TestDetectOutliersSingleSlowRun(t *testing.T) {
	data := append(repeat(0.010, 20), 0.500)

	retained, outliers := DetectOutliers(data)
	assert.Equal(t, []float64{0.500}, outliers)
	assert.Len(t, retained, 20)
	assert.InDelta(t, 0.010, Mean(retained), 1e-12)
	assert.InDelta(t, 0.0333, Mean(data), 1e-3)
}

func TestDetectOutliersKeepsOrder(t *testing.T) {
	data := []float64{1.0, 1.1, 9.0, 0.9, 1.05, 0.95, 1.0, -7.0, 1.02}
	retained, outliers := DetectOutliers(data)
	assert.Equal(t, []float64{9.0, -7.0}, outliers)
	assert.Equal(t, []float64{1.0, 1.1, 0.9, 1.05, 0.95, 1.0, 1.02}, retained)
}

func TestDetectOutliersTooFewSamples(t *testing.T) {
	for _, data := range [][]float64{nil, {1}, {1, 1000}} {
		retained, outliers := DetectOutliers(data)
		assert.Empty(t, outliers)
		assert.Len(t, retained, len(data))
	}
}

func TestDetectOutliersIdempotent(t *testing.T) {
	inputs := [][]float64{
		{1.0, 1.1, 9.0, 0.9, 1.05, 0.95, 1.0, -7.0, 1.02},
		append(repeat(0.010, 20), 0.500),
		{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 5, 50, 500},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}
	for _, data := range inputs {
		retained, _ := DetectOutliers(data)
		again, outliers := DetectOutliers(retained)
		assert.Empty(t, outliers)
		assert.Equal(t, retained, again)
	}
}

func TestAggregateOrdering(t *testing.T) {
	inputs := [][]float64{
		{0.5},
		{0.1, 0.3},
		{0.010, 0.011, 0.5, 0.012, 0.0},
		append(repeat(0.1, 7), 0.1000000001, 0.0999999999),
	}
	for _, data := range inputs {
		retained, _ := DetectOutliers(data)
		lo, hi := MinMax(data)
		mean, median := Mean(retained), Median(retained)

		assert.LessOrEqual(t, lo, median)
		assert.LessOrEqual(t, median, hi)
		assert.LessOrEqual(t, lo, mean)
		assert.LessOrEqual(t, mean, hi)
	}
}

func TestModifiedZScores(t *testing.T) {
	scores := ModifiedZScores([]float64{1, 2, 3, 4, 100})
	// median 3, MAD 1
	want := []float64{-1.349, -0.6745, 0, 0.6745, 65.4265}
	for i := range want {
		if math.Abs(scores[i]-want[i]) > 1e-9 {
			t.Errorf("score[%d] = %v, want %v", i, scores[i], want[i])
		}
	}
	assert.Equal(t, []bool{false, false, false, false, true}, OutlierMask([]float64{1, 2, 3, 4, 100}))
	assert.Equal(t, []bool{false, false, false, false, false}, OutlierMask([]float64{1, 2, 3, 4, 5}))
}
