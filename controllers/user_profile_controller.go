package controllers

import (
	"net/http"
	"strconv"

	"playdates_server/models"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController exposes profile CRUD and search.
type UserProfileController struct {
	Profiles *services.UserProfileService
}

// NewUserProfileController initializes the profile controller.
func NewUserProfileController(profiles *services.UserProfileService) *UserProfileController {
	return &UserProfileController{Profiles: profiles}
}

// CreateProfile handles POST /api/profiles.
func (c *UserProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := decodeBody(r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if profile.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	created, err := c.Profiles.CreateProfile(r.Context(), profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetProfile handles GET /api/profiles/{userId}.
func (c *UserProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.Profiles.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PATCH /api/profiles/{userId}.
func (c *UserProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]string
	if err := decodeBody(r, &updates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := c.Profiles.UpdateProfile(r.Context(), userID, updates)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// DeleteProfile handles DELETE /api/profiles/{userId}.
func (c *UserProfileController) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := c.Profiles.DeleteProfile(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SearchProfiles handles GET /api/profiles/search?q=prefix.
func (c *UserProfileController) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 25
	}

	profiles, err := c.Profiles.SearchByNamePrefix(r.Context(), query, int32(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// UpdateLocation handles PUT /api/profiles/{userId}/location.
func (c *UserProfileController) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var body struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := c.Profiles.UpdateLocation(r.Context(), userID, body.Latitude, body.Longitude); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
