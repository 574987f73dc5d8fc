package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KisanSense/internal/domain/models"
	"KisanSense/internal/intelligence"
)

type fakeStore struct {
	points []models.PricePoint
	err    error
}

func (f *fakeStore) Init(context.Context) error                          { return nil }
func (f *fakeStore) Store(context.Context, *models.PriceRecord) error    { return nil }
func (f *fakeStore) StoreBatch(context.Context, []*models.PriceRecord) error { return nil }
func (f *fakeStore) Series(context.Context, string, string, time.Time, time.Time) ([]models.PricePoint, error) {
	return f.points, f.err
}
func (f *fakeStore) Commodities(context.Context) ([]string, error) { return nil, nil }
func (f *fakeStore) Markets(context.Context, string) ([]models.Mandi, error) {
	return nil, nil
}
func (f *fakeStore) Summaries(context.Context, time.Time) ([]models.CommoditySummary, error) {
	return nil, nil
}
func (f *fakeStore) Health(context.Context) error { return nil }
func (f *fakeStore) Close() error                 { return nil }

type fakeWeather struct {
	ctx *models.WeatherContext
	err error
}

func (f *fakeWeather) Current(context.Context, string) (*models.WeatherContext, error) {
	return f.ctx, f.err
}

type fakeTranslator struct {
	out string
	ok  bool
}

func (f *fakeTranslator) Translate(_ context.Context, text, _ string) (string, bool) {
	if !f.ok {
		return text, false
	}
	return f.out, true
}

func points(prices ...float64) []models.PricePoint {
	out := make([]models.PricePoint, len(prices))
	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range prices {
		out[i] = models.PricePoint{Date: day.AddDate(0, 0, i), ModalPrice: p}
	}
	return out
}

func TestRecommendRuleBased(t *testing.T) {
	store := &fakeStore{points: points(2000, 2050, 2100, 2150, 2220)}
	r := NewRecommender(store, intelligence.NewEngine())

	got, err := r.Recommend(context.Background(), models.RecommendationRequest{
		Commodity: "Wheat", Market: "Khanna Mandi", Language: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionHold, got.Action)
	assert.Equal(t, models.SourceRuleBased, got.Source)
}

func TestRecommendStoreErrorPropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("clickhouse down")}
	r := NewRecommender(store, intelligence.NewEngine())

	_, err := r.Recommend(context.Background(), models.RecommendationRequest{
		Commodity: "Wheat", Market: "Khanna Mandi",
	})
	assert.Error(t, err)
}

func TestRecommendWeatherFailureIsIgnored(t *testing.T) {
	store := &fakeStore{points: points(1500, 1510)}
	r := NewRecommender(store, intelligence.NewEngine(),
		WithRecommenderWeather(&fakeWeather{err: errors.New("owm 401")}))

	got, err := r.Recommend(context.Background(), models.RecommendationRequest{
		Commodity: "Onion", Market: "Lasalgaon",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.Rationale)
}

func TestRecommendTranslatesRuleBasedRationale(t *testing.T) {
	store := &fakeStore{points: points(1500, 1510)}
	r := NewRecommender(store, intelligence.NewEngine(),
		WithRecommenderTranslator(&fakeTranslator{out: "अनुवादित सलाह", ok: true}))

	got, err := r.Recommend(context.Background(), models.RecommendationRequest{
		Commodity: "Onion", Market: "Lasalgaon", Language: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "अनुवादित सलाह", got.Rationale)
}

func TestRecommendTranslationFailureKeepsSource(t *testing.T) {
	store := &fakeStore{points: points(1500, 1510)}
	r := NewRecommender(store, intelligence.NewEngine(),
		WithRecommenderTranslator(&fakeTranslator{ok: false}))

	got, err := r.Recommend(context.Background(), models.RecommendationRequest{
		Commodity: "Onion", Market: "Lasalgaon", Language: "hi",
	})
	require.NoError(t, err)
	assert.Contains(t, got.Rationale, "Onion")
}

func TestRecommendEmptySeriesMonitors(t *testing.T) {
	store := &fakeStore{}
	r := NewRecommender(store, intelligence.NewEngine())

	got, err := r.Recommend(context.Background(), models.RecommendationRequest{
		Commodity: "Maize", Market: "Nizamabad",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionMonitor, got.Action)
	assert.Equal(t, 40, got.ConfidencePercent)
}
