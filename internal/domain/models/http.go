package models

// RecommendationRequest is the body of POST /api/recommendation. When
// Prices is set the engine scores it directly; otherwise the stored
// series for the commodity-market pair is used.
type RecommendationRequest struct {
	Commodity string          `json:"commodity" validate:"required,min=2,max=64"`
	Market    string          `json:"market" validate:"required,min=2,max=128"`
	Prices    []float64       `json:"prices,omitempty" validate:"omitempty,max=365,dive,gt=0"`
	Language  string          `json:"language" default:"en" validate:"omitempty,bcp47_language_tag"`
	Weather   *WeatherContext `json:"weather,omitempty"`
}

// IntelligenceQuery binds GET /api/intelligence query parameters.
type IntelligenceQuery struct {
	Commodity string `query:"commodity" validate:"required,min=2,max=64"`
	Market    string `query:"market" validate:"required,min=2,max=128"`
	Days      int    `query:"days" default:"30" validate:"omitempty,min=2,max=365"`
}

// MarketsQuery binds GET /api/markets query parameters.
type MarketsQuery struct {
	Commodity string `query:"commodity" validate:"required,min=2,max=64"`
}

// WeatherQuery binds GET /api/weather query parameters.
type WeatherQuery struct {
	Location string `query:"location" validate:"required,min=2,max=128"`
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Texts      []string `json:"texts" validate:"required,min=1,max=50,dive,required,max=4096"`
	TargetLang string   `json:"targetLang" default:"hi" validate:"required,min=2,max=8"`
}

// TranslatedText is one translation result. Translated is false when
// the source text came back unmodified.
type TranslatedText struct {
	Text       string `json:"text"`
	Translated bool   `json:"translated"`
}

// TranslateResponse is the body returned by POST /api/translate.
// Results are in request order.
type TranslateResponse struct {
	TargetLang string           `json:"targetLang"`
	Results    []TranslatedText `json:"results"`
}
