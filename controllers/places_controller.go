package controllers

import (
	"net/http"
	"strconv"

	"playdates_server/services"

	"github.com/gorilla/mux"
)

// PlacesController exposes the places lookups backing activity discovery.
type PlacesController struct {
	Places *services.PlacesService
}

// NewPlacesController initializes the places controller.
func NewPlacesController(places *services.PlacesService) *PlacesController {
	return &PlacesController{Places: places}
}

// SearchNearby handles GET /api/places/nearby?lat=..&lng=..&radius=..&type=..
func (c *PlacesController) SearchNearby(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radius, err := strconv.Atoi(r.URL.Query().Get("radius"))
	if err != nil || radius <= 0 {
		radius = 5000
	}
	placeType := r.URL.Query().Get("type")

	places, err := c.Places.SearchNearby(r.Context(), lat, lng, radius, placeType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// GetDetail handles GET /api/places/{placeId}.
func (c *PlacesController) GetDetail(w http.ResponseWriter, r *http.Request) {
	placeID := mux.Vars(r)["placeId"]

	detail, err := c.Places.GetPlaceDetail(r.Context(), placeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Geocode handles GET /api/places/geocode?address=..
func (c *PlacesController) Geocode(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	result, err := c.Places.Geocode(r.Context(), address)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ReverseGeocode handles GET /api/places/reverse-geocode?lat=..&lng=..
func (c *PlacesController) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	result, err := c.Places.ReverseGeocode(r.Context(), lat, lng)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetDirections handles GET /api/places/directions.
func (c *PlacesController) GetDirections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromLat, e1 := strconv.ParseFloat(q.Get("fromLat"), 64)
	fromLng, e2 := strconv.ParseFloat(q.Get("fromLng"), 64)
	toLat, e3 := strconv.ParseFloat(q.Get("toLat"), 64)
	toLng, e4 := strconv.ParseFloat(q.Get("toLng"), 64)
	if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
		writeError(w, http.StatusBadRequest, "fromLat, fromLng, toLat and toLng are required")
		return
	}

	route, err := c.Places.GetDirections(r.Context(), fromLat, fromLng, toLat, toLng, q.Get("mode"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, route)
}
