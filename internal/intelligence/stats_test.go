package intelligence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	got, err := Mean([]float64{2000, 2100, 2300})
	require.NoError(t, err)
	assert.InDelta(t, 2133.333, got, 0.001)
}

func TestMeanEmpty(t *testing.T) {
	_, err := Mean(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestVolatilityConstantSeries(t *testing.T) {
	got, err := Volatility([]float64{1500, 1500, 1500})
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestVolatilityPopulation(t *testing.T) {
	// population std dev of [2, 4, 4, 4, 5, 5, 7, 9] is exactly 2
	got, err := Volatility([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestVolatilityEmpty(t *testing.T) {
	_, err := Volatility([]float64{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestForecastRisingTrend(t *testing.T) {
	prices := []float64{2000, 2050, 2100, 2150, 2220}
	predicted, slope, intercept, err := ForecastNext(prices)
	require.NoError(t, err)
	assert.InDelta(t, 54.0, slope, 1e-9)
	assert.InDelta(t, 1996.0, intercept, 1e-9)
	assert.InDelta(t, 2266.0, predicted, 1e-9)
}

func TestForecastSharpDecline(t *testing.T) {
	prices := []float64{3000, 2800, 2600, 2400, 2200}
	predicted, slope, intercept, err := ForecastNext(prices)
	require.NoError(t, err)
	assert.InDelta(t, -200.0, slope, 1e-9)
	assert.InDelta(t, 3000.0, intercept, 1e-9)
	assert.InDelta(t, 2000.0, predicted, 1e-9)
}

func TestForecastSinglePoint(t *testing.T) {
	predicted, slope, _, err := ForecastNext([]float64{1500})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, predicted)
	assert.Zero(t, slope)
}

func TestForecastEmpty(t *testing.T) {
	_, _, _, err := ForecastNext(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestForecastAlwaysFinite(t *testing.T) {
	series := [][]float64{
		{1},
		{1, 1},
		{0, 0, 0},
		{1e9, 1e9 + 1, 1e9 + 2},
		{2000, 1999.5, 2000.5, 2000},
	}
	for _, prices := range series {
		predicted, _, _, err := ForecastNext(prices)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(predicted) || math.IsInf(predicted, 0),
			"forecast of %v must be finite, got %v", prices, predicted)
	}
}

func TestMinMax(t *testing.T) {
	min, max, err := MinMax([]float64{2100, 1900, 2500, 2000})
	require.NoError(t, err)
	assert.Equal(t, 1900.0, min)
	assert.Equal(t, 2500.0, max)
}
