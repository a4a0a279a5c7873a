package devserver

import (
	"net/http"
	"time"

	"github.com/me/skywarn/pkg/model"
)

func (s *Server) handleCurrentWeather(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, model.CurrentWeather{
		Temperature: 27.5,
		Condition:   "Partly cloudy",
		Humidity:    64,
		WindSpeed:   18.2,
		Location:    "Dev Station",
	})
}

// handlePredict serves canned forecast predictions, one per active alert
// type plus a baseline entry, so clients have something to render.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	seen := map[model.AlertType]bool{}
	predictions := []model.ForecastPrediction{}
	for _, a := range s.alerts {
		if !a.IsActive || seen[a.Type] {
			continue
		}
		seen[a.Type] = true
		predictions = append(predictions, model.ForecastPrediction{
			Date:        time.Now().UTC().Add(24 * time.Hour),
			Type:        a.Type,
			Severity:    a.Severity,
			Probability: 0.7,
			Location:    a.Location,
		})
	}
	s.mu.Unlock()

	predictions = append(predictions, model.ForecastPrediction{
		Date:        time.Now().UTC().Add(48 * time.Hour),
		Type:        model.TypeThunderstorm,
		Severity:    model.SeverityLow,
		Probability: 0.2,
		Location:    "Dev Station",
	})
	respondJSON(w, http.StatusOK, predictions)
}
