package models

import "time"

// PriceRecord is one AGMARKNET observation for a commodity at a mandi,
// normalized from the raw feed. Prices are rupees per quintal.
type PriceRecord struct {
	State       string    `json:"state"`
	District    string    `json:"district"`
	Market      string    `json:"market"`
	Commodity   string    `json:"commodity"`
	Variety     string    `json:"variety,omitempty"`
	ArrivalDate time.Time `json:"arrivalDate"`
	MinPrice    float64   `json:"minPrice"`
	MaxPrice    float64   `json:"maxPrice"`
	ModalPrice  float64   `json:"modalPrice"`
	// ArrivalQty is tonnes brought to the mandi that day; the feed
	// omits it for many markets.
	ArrivalQty *float64 `json:"arrivalQty,omitempty"`
}

// PricePoint is a single day of a price series for one
// commodity-market pair.
type PricePoint struct {
	Date       time.Time `json:"date"`
	ModalPrice float64   `json:"modalPrice"`
	MinPrice   float64   `json:"minPrice,omitempty"`
	MaxPrice   float64   `json:"maxPrice,omitempty"`
	ArrivalQty *float64  `json:"arrivalQty,omitempty"`
}

// Mandi identifies a physical market.
type Mandi struct {
	Name     string `json:"name"`
	District string `json:"district"`
	State    string `json:"state"`
}

// CommoditySummary is the market overview row for one commodity at one
// mandi: latest price plus day-over-day movement.
type CommoditySummary struct {
	Commodity    string    `json:"commodity"`
	Market       string    `json:"market"`
	District     string    `json:"district"`
	State        string    `json:"state"`
	LatestPrice  float64   `json:"latestPrice"`
	PrevPrice    float64   `json:"prevPrice,omitempty"`
	ChangePct    float64   `json:"changePct"`
	LatestDate   time.Time `json:"latestDate"`
	SeriesLength int       `json:"seriesLength"`
}
