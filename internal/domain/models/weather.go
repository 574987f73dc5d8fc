package models

import "encoding/json"

// WeatherContext is the weather snapshot attached to a recommendation
// query. Upstream payloads name these fields inconsistently, so
// unmarshalling accepts the known aliases.
type WeatherContext struct {
	TemperatureC    float64 `json:"temperature"`
	Humidity        float64 `json:"humidity"`
	RainProbability float64 `json:"rainProbability"`
	Description     string  `json:"description"`
}

func (w *WeatherContext) UnmarshalJSON(data []byte) error {
	var raw struct {
		Temperature     *float64 `json:"temperature"`
		Temp            *float64 `json:"temp"`
		Humidity        *float64 `json:"humidity"`
		RainProbability *float64 `json:"rainProbability"`
		RainProbSnake   *float64 `json:"rain_probability"`
		Precipitation   *float64 `json:"precipitation"`
		Description     string   `json:"description"`
		Condition       string   `json:"condition"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick := func(vals ...*float64) float64 {
		for _, v := range vals {
			if v != nil {
				return *v
			}
		}
		return 0
	}

	w.TemperatureC = pick(raw.Temperature, raw.Temp)
	w.Humidity = pick(raw.Humidity)
	w.RainProbability = pick(raw.RainProbability, raw.RainProbSnake, raw.Precipitation)
	w.Description = raw.Description
	if w.Description == "" {
		w.Description = raw.Condition
	}
	return nil
}

// HasData reports whether the snapshot carries any signal.
func (w *WeatherContext) HasData() bool {
	if w == nil {
		return false
	}
	return w.TemperatureC != 0 || w.Humidity != 0 || w.RainProbability != 0 || w.Description != ""
}
