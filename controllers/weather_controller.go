package controllers

import (
	"net/http"

	"github.com/arthurarakelov/burlington-ballers/services"
)

type WeatherController struct {
	Weather *services.WeatherService
}

// GetWeatherHandler handles GET /api/weather?date=YYYY-MM-DD&time=3:04 PM.
// It always answers 200; the service degrades to a placeholder when the
// provider is unreachable.
func (wc *WeatherController) GetWeatherHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	clock := r.URL.Query().Get("time")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date is required"})
		return
	}

	weather := wc.Weather.Annotate(r.Context(), date, clock)
	writeJSON(w, http.StatusOK, weather)
}
