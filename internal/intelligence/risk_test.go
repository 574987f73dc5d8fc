package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"KisanSense/internal/domain/models"
)

func TestClassifyRiskBoundaries(t *testing.T) {
	cases := []struct {
		volatility float64
		want       models.RiskLabel
	}{
		{0, models.RiskLow},
		{50, models.RiskLow},
		{50.0001, models.RiskModerate},
		{150, models.RiskModerate},
		{150.0001, models.RiskHigh},
		{1000, models.RiskHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyRisk(tc.volatility), "volatility=%v", tc.volatility)
	}
}

func TestAssessRiskEmptySeries(t *testing.T) {
	got := AssessRisk(nil)
	assert.Equal(t, models.RiskLow, got.Label)
	assert.Zero(t, got.Volatility)
}
