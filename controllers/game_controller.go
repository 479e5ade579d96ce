package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arthurarakelov/burlington-ballers/middleware"
	"github.com/arthurarakelov/burlington-ballers/models"
	"github.com/arthurarakelov/burlington-ballers/services"
)

// GameController exposes the game lifecycle over HTTP. Edits fan out to
// attendees via the scheduler and every mutation re-primes the live feed.
type GameController struct {
	Games     *services.GameService
	Scheduler *services.NotificationScheduler
	Feed      *services.FeedService
}

// CreateGameHandler handles POST /api/games.
func (gc *GameController) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var ng models.NewGame
	if err := json.NewDecoder(r.Body).Decode(&ng); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	game, err := gc.Games.CreateGame(r.Context(), ng, user)
	if err != nil {
		writeError(w, err)
		return
	}

	gc.Feed.RefreshGames(r.Context())
	writeJSON(w, http.StatusCreated, game)
}

// GetGamesHandler handles GET /api/games.
func (gc *GameController) GetGamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := gc.Games.GetGames(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// UpdateLocationHandler handles PATCH /api/games/{gameId}/location.
func (gc *GameController) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	gameID := mux.Vars(r)["gameId"]

	var body struct {
		Location string `json:"location"`
		Address  string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	game, err := gc.Games.UpdateGameLocation(r.Context(), gameID, user, body.Location, body.Address)
	if err != nil {
		writeError(w, err)
		return
	}

	changes := fmt.Sprintf("Location changed to %s", game.Location)
	if game.Address != "" {
		changes = fmt.Sprintf("%s (%s)", changes, game.Address)
	}
	gc.Scheduler.SendGameChangeNotifications(r.Context(), *game, changes)
	gc.Feed.RefreshGames(r.Context())
	writeJSON(w, http.StatusOK, game)
}

// UpdateTimeHandler handles PATCH /api/games/{gameId}/time.
func (gc *GameController) UpdateTimeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	gameID := mux.Vars(r)["gameId"]

	var body struct {
		Time string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	game, err := gc.Games.UpdateGameTime(r.Context(), gameID, user, body.Time)
	if err != nil {
		writeError(w, err)
		return
	}

	gc.Scheduler.SendGameChangeNotifications(r.Context(), *game, fmt.Sprintf("Time changed to %s", game.Time))
	gc.Feed.RefreshGames(r.Context())
	writeJSON(w, http.StatusOK, game)
}

// DeleteGameHandler handles DELETE /api/games/{gameId}.
func (gc *GameController) DeleteGameHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	gameID := mux.Vars(r)["gameId"]

	if err := gc.Games.DeleteGame(r.Context(), gameID, user); err != nil {
		writeError(w, err)
		return
	}

	gc.Feed.RefreshGames(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "game deleted"})
}

// GetRosterHandler handles GET /api/games/{gameId}/roster.
func (gc *GameController) GetRosterHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	if _, err := gc.Games.GetGame(r.Context(), gameID); err != nil {
		writeError(w, err)
		return
	}
	roster, err := gc.Games.RSVPs.RosterFor(r.Context(), gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}
