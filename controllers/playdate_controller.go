package controllers

import (
	"context"
	"net/http"
	"strconv"

	"playdates_server/models"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// PlaydateController exposes playdate operations.
type PlaydateController struct {
	Playdates *services.PlaydateService
}

// NewPlaydateController initializes the playdate controller.
func NewPlaydateController(playdates *services.PlaydateService) *PlaydateController {
	return &PlaydateController{Playdates: playdates}
}

// CreatePlaydate handles POST /api/playdates.
func (c *PlaydateController) CreatePlaydate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		models.Playdate
		HostName string `json:"hostName"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.HostID == "" {
		writeError(w, http.StatusBadRequest, "hostId is required")
		return
	}

	created, err := c.Playdates.CreatePlaydate(r.Context(), body.Playdate, body.HostName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetPlaydate handles GET /api/playdates/{playdateId}.
func (c *PlaydateController) GetPlaydate(w http.ResponseWriter, r *http.Request) {
	playdateID := mux.Vars(r)["playdateId"]

	playdate, err := c.Playdates.GetPlaydate(r.Context(), playdateID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playdate)
}

// UpdatePlaydate handles PATCH /api/playdates/{playdateId}.
func (c *PlaydateController) UpdatePlaydate(w http.ResponseWriter, r *http.Request) {
	playdateID := mux.Vars(r)["playdateId"]

	var body struct {
		HostID  string            `json:"hostId"`
		Updates map[string]string `json:"updates"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playdate, err := c.Playdates.UpdatePlaydate(r.Context(), playdateID, body.HostID, body.Updates)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playdate)
}

// Join handles POST /api/playdates/{playdateId}/join.
func (c *PlaydateController) Join(w http.ResponseWriter, r *http.Request) {
	c.membership(w, r, c.Playdates.JoinPlaydate)
}

// Leave handles POST /api/playdates/{playdateId}/leave.
func (c *PlaydateController) Leave(w http.ResponseWriter, r *http.Request) {
	c.membership(w, r, c.Playdates.LeavePlaydate)
}

func (c *PlaydateController) membership(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, playdateID, userID string) (*models.Playdate, error)) {
	playdateID := mux.Vars(r)["playdateId"]

	var body struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	playdate, err := op(r.Context(), playdateID, body.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playdate)
}

// ListPublic handles GET /api/playdates.
func (c *PlaydateController) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	playdates, err := c.Playdates.ListPublicPlaydates(r.Context(), int32(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playdates)
}

// ListNearby handles GET /api/playdates/nearby?lat=..&lng=..&radiusKm=..
func (c *PlaydateController) ListNearby(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radiusKm, err := strconv.ParseFloat(r.URL.Query().Get("radiusKm"), 64)
	if err != nil || radiusKm <= 0 {
		radiusKm = 10
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	playdates, err := c.Playdates.ListNearbyPlaydates(r.Context(), lat, lng, radiusKm, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playdates)
}
