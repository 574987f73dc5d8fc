package agmarknet

import (
	"fmt"
	"strings"

	"KisanSense/internal/domain/models"
	"KisanSense/pkg/util"
)

// rawRecord mirrors the feed's row shape. Everything arrives as
// strings, dates as DD/MM/YYYY.
type rawRecord struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	ArrivalDate string `json:"arrival_date"`
	ArrivalQty  string `json:"arrival_quantity"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	ModalPrice  string `json:"modal_price"`
}

// Normalize converts a raw feed row into a PriceRecord. A row without a
// parseable date, commodity, market, or positive modal price is
// rejected.
func Normalize(raw rawRecord) (*models.PriceRecord, error) {
	commodity := strings.TrimSpace(raw.Commodity)
	market := strings.TrimSpace(raw.Market)
	if commodity == "" || market == "" {
		return nil, fmt.Errorf("missing commodity or market")
	}

	date, ok := util.ParseArrivalDate(strings.TrimSpace(raw.ArrivalDate))
	if !ok {
		return nil, fmt.Errorf("bad arrival date %q", raw.ArrivalDate)
	}

	modal, ok := util.ParseFloat(strings.TrimSpace(raw.ModalPrice))
	if !ok || modal <= 0 {
		return nil, fmt.Errorf("bad modal price %q", raw.ModalPrice)
	}

	min, _ := util.ParseFloat(strings.TrimSpace(raw.MinPrice))
	max, _ := util.ParseFloat(strings.TrimSpace(raw.MaxPrice))

	// most markets omit arrival quantity; keep it only when present
	// and sensible
	var qty *float64
	if q, ok := util.ParseFloat(strings.TrimSpace(raw.ArrivalQty)); ok && q >= 0 {
		qty = &q
	}

	return &models.PriceRecord{
		State:       strings.TrimSpace(raw.State),
		District:    strings.TrimSpace(raw.District),
		Market:      market,
		Commodity:   commodity,
		Variety:     strings.TrimSpace(raw.Variety),
		ArrivalDate: date,
		MinPrice:    min,
		MaxPrice:    max,
		ModalPrice:  modal,
		ArrivalQty:  qty,
	}, nil
}
