package model

import "time"

// CurrentWeather is the snapshot returned by GET /weather/current.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"` // degrees Celsius
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"` // percent
	WindSpeed   float64 `json:"windSpeed"` // km/h
	Location    string  `json:"location,omitempty"`
}

// ForecastPrediction is one entry from the GET /ml/predict forecast model.
type ForecastPrediction struct {
	Date        time.Time `json:"date"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Probability float64   `json:"probability"` // 0..1
	Location    string    `json:"location,omitempty"`
}
