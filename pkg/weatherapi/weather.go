package weatherapi

import (
	"context"
	"net/http"

	"github.com/me/skywarn/pkg/model"
)

// CurrentWeather returns the current conditions snapshot.
func (c *Client) CurrentWeather(ctx context.Context) (*model.CurrentWeather, error) {
	var weather model.CurrentWeather
	if err := c.do(ctx, "weather.current", http.MethodGet, "/weather/current", nil, &weather); err != nil {
		return nil, err
	}
	return &weather, nil
}

// ForecastPredictions returns the forecast model's hazard predictions.
func (c *Client) ForecastPredictions(ctx context.Context) ([]model.ForecastPrediction, error) {
	var predictions []model.ForecastPrediction
	if err := c.do(ctx, "forecast.predict", http.MethodGet, "/ml/predict", nil, &predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}
