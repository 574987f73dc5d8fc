package intelligence

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KisanSense/internal/domain/models"
	"KisanSense/internal/domain/service"
)

type fakeAdvisor struct {
	text  string
	err   error
	delay time.Duration
	calls int
}

func (f *fakeAdvisor) Advise(ctx context.Context, q service.AdvisoryQuery) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func TestRuleBasedRisingTrend(t *testing.T) {
	prices := []float64{2000, 2050, 2100, 2150, 2220}
	got := RuleBasedRecommendation(prices, "Wheat", "Azadpur Mandi")

	// OLS projects 2266, a gain of 46: inside the modest-rise band
	assert.Equal(t, models.ActionHold, got.Action)
	assert.Equal(t, models.SourceRuleBased, got.Source)
	assert.InDelta(t, 2266.0, got.PredictedPrice, 1e-9)
	assert.InDelta(t, 46.0, got.ExpectedGain, 1e-9)
	assert.Equal(t, 50, got.ConfidencePercent)
	assert.Contains(t, got.Rationale, "Wheat")
	assert.Contains(t, got.Rationale, "Azadpur Mandi")
	assert.Contains(t, got.Rationale, "2266")
}

func TestRuleBasedSharpDecline(t *testing.T) {
	prices := []float64{3000, 2800, 2600, 2400, 2200}
	got := RuleBasedRecommendation(prices, "Tomato", "Binny Mill")

	assert.Equal(t, models.ActionSellNow, got.Action)
	assert.InDelta(t, 2000.0, got.PredictedPrice, 1e-9)
	assert.InDelta(t, -200.0, got.ExpectedGain, 1e-9)
	assert.Contains(t, got.Rationale, "2000")
}

func TestRuleBasedSinglePoint(t *testing.T) {
	got := RuleBasedRecommendation([]float64{1500}, "Onion", "Lasalgaon")

	assert.Equal(t, models.ActionHold, got.Action)
	assert.Equal(t, models.SourceRuleBased, got.Source)
	assert.Equal(t, 1500.0, got.PredictedPrice)
	assert.Zero(t, got.ExpectedGain)
	assert.Equal(t, string(models.RiskLow), got.RiskLevel)
	assert.Equal(t, 42, got.ConfidencePercent)
}

func TestRuleBasedEmptySeries(t *testing.T) {
	got := RuleBasedRecommendation(nil, "Onion", "Lasalgaon")

	assert.Equal(t, models.ActionMonitor, got.Action)
	assert.Equal(t, models.SourceRuleBased, got.Source)
	assert.Equal(t, 40, got.ConfidencePercent)
	assert.NotEmpty(t, got.Rationale)
	// no numeric claims without data
	assert.Zero(t, got.PredictedPrice)
	assert.Zero(t, got.CurrentPrice)
}

func TestRuleBasedWaitBands(t *testing.T) {
	// steep rise: slope 100, predicted 2900, gain +100 -> WAIT
	up := RuleBasedRecommendation([]float64{2400, 2500, 2600, 2700, 2800}, "Wheat", "Khanna")
	assert.Equal(t, models.ActionWait, up.Action)

	// modest dip: slope -5, predicted 2467.5 vs 2480, gain -12.5 -> WAIT
	down := RuleBasedRecommendation([]float64{2500, 2490, 2480, 2475, 2480}, "Wheat", "Khanna")
	require.Negative(t, down.ExpectedGain)
	assert.Equal(t, models.ActionWait, down.Action)
}

func TestParseAction(t *testing.T) {
	cases := []struct {
		text string
		want models.Action
	}{
		{"You should SELL your stock today", models.ActionSellNow},
		{"Best to sell now before prices fall further", models.ActionSellNow},
		{"Wait a week, prices will recover", models.ActionWait},
		{"Hold your produce for now", models.ActionHold},
		{"Prices look uncertain this season", models.ActionMonitor},
		// SELL outranks later tokens
		{"Do not hold, sell immediately", models.ActionSellNow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAction(tc.text), "text=%q", tc.text)
	}
}

func TestEngineUnconfiguredUsesRules(t *testing.T) {
	e := NewEngine()
	got := e.GetRecommendation(context.Background(), Query{
		Prices: []float64{2000, 2050, 2100, 2150, 2220}, Commodity: "Wheat", Market: "Azadpur",
	})
	assert.Equal(t, models.SourceRuleBased, got.Source)
	assert.Equal(t, models.ActionHold, got.Action)
}

func TestEngineAdvisorySuccess(t *testing.T) {
	adv := &fakeAdvisor{text: "  Prices are rising, wait for a better rate next week.  "}
	e := NewEngine(WithAdvisor(adv))

	got := e.GetRecommendation(context.Background(), Query{
		Prices: []float64{2000, 2050, 2100, 2150, 2220}, Commodity: "Wheat", Market: "Azadpur",
	})

	assert.Equal(t, models.SourceAdvisory, got.Source)
	assert.Equal(t, models.ActionWait, got.Action)
	assert.Equal(t, strings.TrimSpace(adv.text), got.Rationale)
	assert.Equal(t, 50, got.ConfidencePercent)
	assert.Equal(t, 1, adv.calls)
}

func TestEngineAdvisoryErrorFallsBack(t *testing.T) {
	adv := &fakeAdvisor{err: errors.New("upstream returned status 503")}
	e := NewEngine(WithAdvisor(adv))

	got := e.GetRecommendation(context.Background(), Query{
		Prices: []float64{3000, 2800, 2600, 2400, 2200}, Commodity: "Tomato", Market: "Binny Mill",
	})

	assert.Equal(t, models.SourceRuleBased, got.Source)
	assert.Equal(t, models.ActionSellNow, got.Action)
	assert.NotEmpty(t, got.Rationale)
	// single attempt, no retry against the advisory service
	assert.Equal(t, 1, adv.calls)
}

func TestEngineAdvisoryTimeoutFallsBack(t *testing.T) {
	adv := &fakeAdvisor{text: "sell", delay: 200 * time.Millisecond}
	e := NewEngine(WithAdvisor(adv), WithAdvisoryTimeout(20*time.Millisecond))

	got := e.GetRecommendation(context.Background(), Query{
		Prices: []float64{1500, 1510}, Commodity: "Onion", Market: "Lasalgaon",
	})

	assert.Equal(t, models.SourceRuleBased, got.Source)
	assert.NotEmpty(t, got.Rationale)
}

func TestEngineAdvisoryEmptyTextFallsBack(t *testing.T) {
	adv := &fakeAdvisor{text: "   "}
	e := NewEngine(WithAdvisor(adv))

	got := e.GetRecommendation(context.Background(), Query{
		Prices: []float64{1500, 1510}, Commodity: "Onion", Market: "Lasalgaon",
	})

	assert.Equal(t, models.SourceRuleBased, got.Source)
	assert.NotEmpty(t, got.Rationale)
}

func TestEngineEmptySeriesSkipsAdvisory(t *testing.T) {
	adv := &fakeAdvisor{text: "sell"}
	e := NewEngine(WithAdvisor(adv))

	got := e.GetRecommendation(context.Background(), Query{Commodity: "Onion", Market: "Lasalgaon"})

	assert.Equal(t, models.ActionMonitor, got.Action)
	assert.Equal(t, 40, got.ConfidencePercent)
	assert.Zero(t, adv.calls)
}
