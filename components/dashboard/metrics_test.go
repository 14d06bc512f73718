package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumMean(t *testing.T) {
	assert.Equal(t, 10.0, Sum([]float64{1, 2, 3, 4}))
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
	assert.Zero(t, Mean(nil))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 73.1, Round(73.0769, 1))
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0))
	assert.Equal(t, 6.29, Round(6.2857, 2))
}

func TestRatioShares(t *testing.T) {
	assert.Zero(t, Ratio(5, 0))
	assert.InDelta(t, 73.0769, Ratio(95000, 130000), 1e-4)

	shares := Shares([]float64{1, 1, 2})
	assert.Equal(t, []float64{25, 25, 50}, shares)
	assert.Equal(t, []float64{0, 0}, Shares([]float64{0, 0}))
}

func TestMaxMinIndexFirstExtreme(t *testing.T) {
	idx, v := MaxIndex([]float64{3, 9, 9, 1})
	assert.Equal(t, 1, idx)
	assert.Equal(t, 9.0, v)

	idx, v = MinIndex([]float64{3, 1, 9, 1})
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1.0, v)

	idx, _ = MaxIndex(nil)
	assert.Equal(t, -1, idx)
	idx, _ = MinIndex([]float64{})
	assert.Equal(t, -1, idx)
}

func TestDropoffs(t *testing.T) {
	assert.Equal(t, []float64{0, 50, 75}, Dropoffs([]float64{100, 50, 12.5}))
	assert.Equal(t, []float64{0, 0}, Dropoffs([]float64{0, 10}))
	assert.Empty(t, Dropoffs(nil))
}

func TestDifferences(t *testing.T) {
	assert.Equal(t, []float64{1, -2}, Differences([]float64{3, 1, 7}, []float64{2, 3}))
}
