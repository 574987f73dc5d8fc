package agmarknet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	rec, err := Normalize(rawRecord{
		State:       "Punjab",
		District:    "Ludhiana",
		Market:      "Khanna Mandi",
		Commodity:   "Wheat",
		Variety:     "Dara",
		ArrivalDate: "15/08/2025",
		MinPrice:    "2100",
		MaxPrice:    "2300",
		ModalPrice:  "2220",
	})
	require.NoError(t, err)
	assert.Equal(t, "Wheat", rec.Commodity)
	assert.Equal(t, "Khanna Mandi", rec.Market)
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), rec.ArrivalDate)
	assert.Equal(t, 2220.0, rec.ModalPrice)
	assert.Equal(t, 2100.0, rec.MinPrice)
	assert.Equal(t, 2300.0, rec.MaxPrice)
}

func TestNormalizeTrimsFields(t *testing.T) {
	rec, err := Normalize(rawRecord{
		Market:      "  Lasalgaon  ",
		Commodity:   " Onion ",
		ArrivalDate: "01/01/2025",
		ModalPrice:  " 1500 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Onion", rec.Commodity)
	assert.Equal(t, "Lasalgaon", rec.Market)
}

func TestNormalizeRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		row  rawRecord
	}{
		{"missing commodity", rawRecord{Market: "M", ArrivalDate: "01/01/2025", ModalPrice: "100"}},
		{"missing market", rawRecord{Commodity: "C", ArrivalDate: "01/01/2025", ModalPrice: "100"}},
		{"iso date", rawRecord{Commodity: "C", Market: "M", ArrivalDate: "2025-01-01", ModalPrice: "100"}},
		{"zero modal price", rawRecord{Commodity: "C", Market: "M", ArrivalDate: "01/01/2025", ModalPrice: "0"}},
		{"non-numeric modal price", rawRecord{Commodity: "C", Market: "M", ArrivalDate: "01/01/2025", ModalPrice: "NR"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.row)
			assert.Error(t, err)
		})
	}
}
