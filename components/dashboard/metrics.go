package dashboard

import "math"

// Sum adds the values.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places <= 0 {
		return math.Round(v)
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Ratio expresses part as a percentage of whole. A zero whole yields 0.
func Ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// Shares expresses each value as a percentage of the total.
func Shares(values []float64) []float64 {
	total := Sum(values)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Ratio(v, total)
	}
	return out
}

// MaxIndex returns the index and value of the first maximum, or -1 for an empty input.
func MaxIndex(values []float64) (int, float64) {
	idx := -1
	max := 0.0
	for i, v := range values {
		if idx == -1 || v > max {
			idx, max = i, v
		}
	}
	return idx, max
}

// MinIndex returns the index and value of the first minimum, or -1 for an empty input.
func MinIndex(values []float64) (int, float64) {
	idx := -1
	min := 0.0
	for i, v := range values {
		if idx == -1 || v < min {
			idx, min = i, v
		}
	}
	return idx, min
}

// Dropoffs returns, for each stage, the percentage lost relative to the
// previous stage. The first stage always reports 0.
func Dropoffs(counts []float64) []float64 {
	out := make([]float64, len(counts))
	for i := 1; i < len(counts); i++ {
		if counts[i-1] == 0 {
			continue
		}
		out[i] = 100 - Ratio(counts[i], counts[i-1])
	}
	return out
}

// Differences returns a[i]-b[i] for the common prefix of both slices.
func Differences(a, b []float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] - b[i]
	}
	return out
}
