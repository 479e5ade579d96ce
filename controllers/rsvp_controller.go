package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/arthurarakelov/burlington-ballers/middleware"
	"github.com/arthurarakelov/burlington-ballers/services"
)

type RSVPController struct {
	RSVPs *services.RSVPService
	Feed  *services.FeedService
}

// SetResponseHandler handles PUT /api/rsvps.
func (rc *RSVPController) SetResponseHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var body struct {
		GameID      string `json:"gameId"`
		Status      string `json:"status"`
		ArrivalTime string `json:"arrivalTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	rsvp, err := rc.RSVPs.SetResponse(r.Context(), body.GameID, user, body.Status, body.ArrivalTime)
	if err != nil {
		writeError(w, err)
		return
	}

	rc.Feed.RefreshGames(r.Context())
	writeJSON(w, http.StatusOK, rsvp)
}

// ClearResponseHandler handles DELETE /api/rsvps.
func (rc *RSVPController) ClearResponseHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var body struct {
		GameID string `json:"gameId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := rc.RSVPs.ClearResponse(r.Context(), body.GameID, user.UID); err != nil {
		writeError(w, err)
		return
	}

	rc.Feed.RefreshGames(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "response cleared"})
}
