package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/arthurarakelov/burlington-ballers/middleware"
	"github.com/arthurarakelov/burlington-ballers/models"
	"github.com/arthurarakelov/burlington-ballers/services"
)

type UserProfileController struct {
	Users *services.UserProfileService
}

// GetMeHandler handles GET /api/users/me.
func (uc *UserProfileController) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	profile, err := uc.Users.GetUserProfile(r.Context(), user.UID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// SetUsernameHandler handles POST /api/users/username.
func (uc *UserProfileController) SetUsernameHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	profile, err := uc.Users.SetUsername(r.Context(), user.UID, body.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateSettingsHandler handles PUT /api/users/settings.
func (uc *UserProfileController) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var body struct {
		Username         string                  `json:"username"`
		EmailPreferences models.EmailPreferences `json:"emailPreferences"`
		WesMode          bool                    `json:"wesMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	profile, err := uc.Users.UpdateSettings(r.Context(), user.UID, body.Username, body.EmailPreferences, body.WesMode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
