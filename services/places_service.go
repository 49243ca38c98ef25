package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"playdates_server/models"
)

// Per-kind cache TTLs. Geocode results never expire; addresses do not move.
const (
	NearbyCacheTTL = 5 * time.Minute
	DetailCacheTTL = time.Hour
)

// Request kinds. Throttling and TTLs are tracked per kind, so a burst of
// nearby searches does not starve a detail lookup.
const (
	kindNearby     = "nearby"
	kindDetail     = "detail"
	kindGeocode    = "geocode"
	kindRevGeocode = "revgeocode"
	kindDirections = "directions"
)

// PlacesService is a throttled fetch-cache over the external places API.
// Every outbound request is spaced at least MinInterval apart per kind, and
// successful responses (including empty result sets) are cached under a
// quantized key. Errors are never cached; the next caller retries.
type PlacesService struct {
	APIKey      string
	BaseURL     string
	Client      *http.Client
	MinInterval time.Duration

	mu           sync.Mutex
	cache        map[string]cacheEntry
	lastDispatch map[string]time.Time

	// Injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time // zero means never
}

// NewPlacesService creates a PlacesService against the given API endpoint.
func NewPlacesService(apiKey, baseURL string, minInterval, timeout time.Duration) *PlacesService {
	return &PlacesService{
		APIKey:       apiKey,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Client:       &http.Client{Timeout: timeout},
		MinInterval:  minInterval,
		cache:        make(map[string]cacheEntry),
		lastDispatch: make(map[string]time.Time),
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// SearchNearby finds places of the given type around a coordinate.
// Coordinates are quantized to two decimals (roughly a kilometer) and the
// radius to 500 m buckets, so callers circling the same block share one
// upstream request.
func (ps *PlacesService) SearchNearby(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]models.ActivityPlace, error) {
	cacheKey := fmt.Sprintf("%s:%.2f:%.2f:%d:%s", kindNearby, lat, lng, radiusMeters/500, strings.ToLower(placeType))
	if cached, ok := ps.lookup(cacheKey); ok {
		return cached.([]models.ActivityPlace), nil
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	if placeType != "" {
		params.Set("type", placeType)
	}

	var response nearbyResponse
	if err := ps.fetch(ctx, kindNearby, "/place/nearbysearch/json", params, &response); err != nil {
		return nil, err
	}

	places := make([]models.ActivityPlace, 0, len(response.Results))
	for _, r := range response.Results {
		places = append(places, models.ActivityPlace{
			PlaceID:   r.PlaceID,
			Name:      r.Name,
			Vicinity:  r.Vicinity,
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
			Rating:    r.Rating,
			Types:     r.Types,
			PhotoRef:  firstPhotoRef(r.Photos),
		})
	}

	ps.store(cacheKey, places, NearbyCacheTTL)
	return places, nil
}

// GetPlaceDetail fetches the full record for one place.
func (ps *PlacesService) GetPlaceDetail(ctx context.Context, placeID string) (*models.PlaceDetail, error) {
	cacheKey := kindDetail + ":" + placeID
	if cached, ok := ps.lookup(cacheKey); ok {
		detail := cached.(models.PlaceDetail)
		return &detail, nil
	}

	params := url.Values{}
	params.Set("place_id", placeID)

	var response detailResponse
	if err := ps.fetch(ctx, kindDetail, "/place/details/json", params, &response); err != nil {
		return nil, err
	}

	detail := models.PlaceDetail{
		PlaceID:     placeID,
		Name:        response.Result.Name,
		Address:     response.Result.FormattedAddress,
		PhoneNumber: response.Result.FormattedPhoneNumber,
		Website:     response.Result.Website,
		Latitude:    response.Result.Geometry.Location.Lat,
		Longitude:   response.Result.Geometry.Location.Lng,
		Rating:      response.Result.Rating,
		OpenNow:     response.Result.OpeningHours.OpenNow,
		Types:       response.Result.Types,
	}

	ps.store(cacheKey, detail, DetailCacheTTL)
	return &detail, nil
}

// Geocode resolves an address to coordinates. The key is the trimmed,
// lowercased query; geocode entries never expire.
func (ps *PlacesService) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	term := strings.ToLower(strings.TrimSpace(address))
	if term == "" {
		return nil, fmt.Errorf("empty geocode query: %w", models.ErrInvalidState)
	}
	cacheKey := kindGeocode + ":" + term
	if cached, ok := ps.lookup(cacheKey); ok {
		result := cached.(models.GeocodeResult)
		return &result, nil
	}

	params := url.Values{}
	params.Set("address", address)

	var response geocodeResponse
	if err := ps.fetch(ctx, kindGeocode, "/geocode/json", params, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("no geocode match for %q: %w", address, models.ErrItemNotFound)
	}

	result := models.GeocodeResult{
		FormattedAddress: response.Results[0].FormattedAddress,
		Latitude:         response.Results[0].Geometry.Location.Lat,
		Longitude:        response.Results[0].Geometry.Location.Lng,
	}

	ps.store(cacheKey, result, 0)
	return &result, nil
}

// ReverseGeocode resolves coordinates to an address. Four decimals of
// quantization keeps the key stable across GPS jitter (roughly 11 m).
func (ps *PlacesService) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.GeocodeResult, error) {
	cacheKey := fmt.Sprintf("%s:%.4f:%.4f", kindRevGeocode, lat, lng)
	if cached, ok := ps.lookup(cacheKey); ok {
		result := cached.(models.GeocodeResult)
		return &result, nil
	}

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))

	var response geocodeResponse
	if err := ps.fetch(ctx, kindRevGeocode, "/geocode/json", params, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("no address at %f,%f: %w", lat, lng, models.ErrItemNotFound)
	}

	result := models.GeocodeResult{
		FormattedAddress: response.Results[0].FormattedAddress,
		Latitude:         lat,
		Longitude:        lng,
	}

	ps.store(cacheKey, result, 0)
	return &result, nil
}

// GetDirections summarizes a route between two coordinates for the given
// travel mode.
func (ps *PlacesService) GetDirections(ctx context.Context, fromLat, fromLng, toLat, toLng float64, mode string) (*models.Route, error) {
	if mode == "" {
		mode = "driving"
	}
	cacheKey := fmt.Sprintf("%s:%.4f:%.4f:%.4f:%.4f:%s", kindDirections, fromLat, fromLng, toLat, toLng, mode)
	if cached, ok := ps.lookup(cacheKey); ok {
		route := cached.(models.Route)
		return &route, nil
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", fromLat, fromLng))
	params.Set("destination", fmt.Sprintf("%f,%f", toLat, toLng))
	params.Set("mode", mode)

	var response directionsResponse
	if err := ps.fetch(ctx, kindDirections, "/directions/json", params, &response); err != nil {
		return nil, err
	}
	if len(response.Routes) == 0 {
		return nil, fmt.Errorf("no route found: %w", models.ErrItemNotFound)
	}

	r := response.Routes[0]
	route := models.Route{
		Summary:  r.Summary,
		Polyline: r.OverviewPolyline.Points,
	}
	for _, leg := range r.Legs {
		route.DistanceMeters += leg.Distance.Value
		route.DurationSeconds += leg.Duration.Value
	}

	ps.store(cacheKey, route, DetailCacheTTL)
	return &route, nil
}

// StartSweep evicts expired cache entries on the given interval until ctx is
// cancelled. Lookup already skips expired entries; the sweep just reclaims
// memory.
func (ps *PlacesService) StartSweep(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ps.evictExpired()
			}
		}
	}()
}

func (ps *PlacesService) evictExpired() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	now := ps.now()
	for key, entry := range ps.cache {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(ps.cache, key)
		}
	}
}

func (ps *PlacesService) lookup(key string) (interface{}, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	entry, ok := ps.cache[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && ps.now().After(entry.expiresAt) {
		delete(ps.cache, key)
		return nil, false
	}
	return entry.value, true
}

func (ps *PlacesService) store(key string, value interface{}, ttl time.Duration) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = ps.now().Add(ttl)
	}
	ps.cache[key] = entry
}

// throttle reserves the next dispatch slot for a request kind. The slot is
// claimed under the lock, then the caller sleeps outside it, so concurrent
// requests of one kind queue up MinInterval apart instead of stampeding.
func (ps *PlacesService) throttle(kind string) {
	ps.mu.Lock()
	now := ps.now()
	dispatchAt := now
	if last, ok := ps.lastDispatch[kind]; ok {
		if earliest := last.Add(ps.MinInterval); earliest.After(dispatchAt) {
			dispatchAt = earliest
		}
	}
	ps.lastDispatch[kind] = dispatchAt
	ps.mu.Unlock()

	if wait := dispatchAt.Sub(now); wait > 0 {
		ps.sleep(wait)
	}
}

// fetch performs one throttled request and decodes the envelope. The API
// reports errors in-band via the status field; OK and ZERO_RESULTS are
// success, everything else is a typed failure.
func (ps *PlacesService) fetch(ctx context.Context, kind, path string, params url.Values, out statusCarrier) error {
	ps.throttle(kind)

	params.Set("key", ps.APIKey)
	endpoint := ps.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build places request: %w", err)
	}

	resp, err := ps.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("places request timed out: %w", models.ErrTimeout)
		}
		return fmt.Errorf("places request failed: %w: %v", models.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places API returned HTTP %d: %w", resp.StatusCode, models.ErrTransport)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode places response: %w: %v", models.ErrDecodeFailure, err)
	}

	switch status := out.status(); status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT":
		return fmt.Errorf("places API quota exceeded: %w", models.ErrRateLimited)
	default:
		return fmt.Errorf("places API status %s: %w", status, models.ErrTransport)
	}
}

// statusCarrier is the shared envelope shape of places API responses.
type statusCarrier interface {
	status() string
}

type apiStatus struct {
	Status string `json:"status"`
}

func (s apiStatus) status() string { return s.Status }

type geometry struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

type photoRef struct {
	PhotoReference string `json:"photo_reference"`
}

func firstPhotoRef(photos []photoRef) string {
	if len(photos) == 0 {
		return ""
	}
	return photos[0].PhotoReference
}

type nearbyResponse struct {
	apiStatus
	Results []struct {
		PlaceID  string     `json:"place_id"`
		Name     string     `json:"name"`
		Vicinity string     `json:"vicinity"`
		Geometry geometry   `json:"geometry"`
		Rating   float64    `json:"rating"`
		Types    []string   `json:"types"`
		Photos   []photoRef `json:"photos"`
	} `json:"results"`
}

type detailResponse struct {
	apiStatus
	Result struct {
		Name                 string   `json:"name"`
		FormattedAddress     string   `json:"formatted_address"`
		FormattedPhoneNumber string   `json:"formatted_phone_number"`
		Website              string   `json:"website"`
		Geometry             geometry `json:"geometry"`
		Rating               float64  `json:"rating"`
		Types                []string `json:"types"`
		OpeningHours         struct {
			OpenNow bool `json:"open_now"`
		} `json:"opening_hours"`
	} `json:"result"`
}

type geocodeResponse struct {
	apiStatus
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Geometry         geometry `json:"geometry"`
	} `json:"results"`
}

type directionsResponse struct {
	apiStatus
	Routes []struct {
		Summary string `json:"summary"`
		Legs    []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}
