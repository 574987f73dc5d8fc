// Package intelligence implements the price forecast and recommendation
// engine: series statistics, volatility risk classification, a
// deterministic rule-based recommender, and the advisory orchestration
// that falls back to it.
package intelligence

import (
	"errors"
	"math"
)

// ErrEmptySeries is returned by statistics over an empty price sequence.
var ErrEmptySeries = errors.New("price sequence is empty")

// Mean returns the arithmetic mean of prices.
func Mean(prices []float64) (float64, error) {
	if len(prices) == 0 {
		return 0, ErrEmptySeries
	}
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices)), nil
}

// Volatility returns the population standard deviation of prices.
// Population (divide by N), not sample: the risk thresholds are
// calibrated against this exact measure.
func Volatility(prices []float64) (float64, error) {
	mean, err := Mean(prices)
	if err != nil {
		return 0, err
	}
	var sumSq float64
	for _, p := range prices {
		d := p - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(prices))), nil
}

// Forecast extrapolates the next value via ordinary least squares on
// index 0..N-1 against price, evaluated at index N. Requires N >= 2;
// callers must short-circuit the single-point case (the denominator is
// zero at N=1).
func ForecastNext(prices []float64) (predicted, slope, intercept float64, err error) {
	n := len(prices)
	if n == 0 {
		return 0, 0, 0, ErrEmptySeries
	}
	if n == 1 {
		return prices[0], 0, prices[0], nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range prices {
		x := float64(i)
		sumX += x
		sumY += p
		sumXY += x * p
		sumXX += x * x
	}
	fn := float64(n)
	slope = (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / fn
	predicted = intercept + slope*fn
	return predicted, slope, intercept, nil
}

// MinMax returns the smallest and largest values of a non-empty series.
func MinMax(prices []float64) (min, max float64, err error) {
	if len(prices) == 0 {
		return 0, 0, ErrEmptySeries
	}
	min, max = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max, nil
}
