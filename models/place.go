package models

// Read-only projections of places API responses. None of these are
// persisted; they live only inside the fetch-cache TTL window.

// ActivityPlace is one result of a nearby search.
type ActivityPlace struct {
	PlaceID   string   `json:"placeId"`
	Name      string   `json:"name"`
	Vicinity  string   `json:"vicinity,omitempty"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Rating    float64  `json:"rating,omitempty"`
	Types     []string `json:"types,omitempty"`
	PhotoRef  string   `json:"photoRef,omitempty"`
}

// PlaceDetail is the full record for a single place.
type PlaceDetail struct {
	PlaceID     string   `json:"placeId"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Website     string   `json:"website,omitempty"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Rating      float64  `json:"rating,omitempty"`
	OpenNow     bool     `json:"openNow,omitempty"`
	Types       []string `json:"types,omitempty"`
}

// GeocodeResult maps between an address and coordinates.
type GeocodeResult struct {
	FormattedAddress string  `json:"formattedAddress"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// Route is a summarized directions response.
type Route struct {
	Summary         string `json:"summary,omitempty"`
	DistanceMeters  int    `json:"distanceMeters"`
	DurationSeconds int    `json:"durationSeconds"`
	Polyline        string `json:"polyline,omitempty"`
}
