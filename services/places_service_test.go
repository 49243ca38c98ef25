package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"playdates_server/models"

	"github.com/stretchr/testify/require"
)

func TestThrottleSpacesDispatchesPerKind(t *testing.T) {
	ps := NewPlacesService("key", "http://places.test", 100*time.Millisecond, time.Second)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := base
	var slept []time.Duration
	ps.now = func() time.Time { return now }
	ps.sleep = func(d time.Duration) {
		slept = append(slept, d)
		now = now.Add(d)
	}

	ps.throttle(kindNearby)
	require.Empty(t, slept, "first dispatch goes out immediately")

	ps.throttle(kindNearby)
	require.Equal(t, []time.Duration{100 * time.Millisecond}, slept)

	ps.throttle(kindNearby)
	require.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, slept)

	// Another kind has its own schedule and is not delayed.
	before := len(slept)
	ps.throttle(kindDetail)
	require.Len(t, slept, before)
}

func newNearbyServer(t *testing.T, requests *int64, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

const nearbyBody = `{
	"status": "OK",
	"results": [{
		"place_id": "p1",
		"name": "Adventure Park",
		"vicinity": "12 Main St",
		"geometry": {"location": {"lat": 40.78, "lng": -73.96}},
		"rating": 4.5,
		"types": ["park"]
	}]
}`

func TestSearchNearbyCachesSuccess(t *testing.T) {
	var requests int64
	server := newNearbyServer(t, &requests, nearbyBody)
	defer server.Close()

	ps := NewPlacesService("key", server.URL, 0, time.Second)

	first, err := ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, "Adventure Park", first[0].Name)

	second, err := ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, atomic.LoadInt64(&requests), "second call must be served from cache")
}

func TestSearchNearbyQuantizesCacheKey(t *testing.T) {
	var requests int64
	server := newNearbyServer(t, &requests, nearbyBody)
	defer server.Close()

	ps := NewPlacesService("key", server.URL, 0, time.Second)

	// Coordinates differing below the 2-decimal quantum share one request.
	_, err := ps.SearchNearby(context.Background(), 40.781, -73.959, 5000, "park")
	require.NoError(t, err)
	_, err = ps.SearchNearby(context.Background(), 40.779, -73.961, 5000, "park")
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt64(&requests))

	// A different place type is a different key.
	_, err = ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "museum")
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt64(&requests))
}

func TestSearchNearbyZeroResultsIsCachedSuccess(t *testing.T) {
	var requests int64
	server := newNearbyServer(t, &requests, `{"status": "ZERO_RESULTS", "results": []}`)
	defer server.Close()

	ps := NewPlacesService("key", server.URL, 0, time.Second)

	places, err := ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.NoError(t, err)
	require.Empty(t, places)

	_, err = ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt64(&requests), "empty result set is still a cacheable answer")
}

func TestSearchNearbyErrorIsNeverCached(t *testing.T) {
	var requests int64
	server := newNearbyServer(t, &requests, `{"status": "OVER_QUERY_LIMIT"}`)
	defer server.Close()

	ps := NewPlacesService("key", server.URL, 0, time.Second)

	_, err := ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.ErrorIs(t, err, models.ErrRateLimited)

	_, err = ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.ErrorIs(t, err, models.ErrRateLimited)
	require.EqualValues(t, 2, atomic.LoadInt64(&requests), "failures must retry upstream")
}

func TestNearbyCacheExpires(t *testing.T) {
	var requests int64
	server := newNearbyServer(t, &requests, nearbyBody)
	defer server.Close()

	ps := NewPlacesService("key", server.URL, 0, time.Second)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ps.now = func() time.Time { return now }

	_, err := ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.NoError(t, err)

	now = now.Add(NearbyCacheTTL + time.Second)
	_, err = ps.SearchNearby(context.Background(), 40.78, -73.96, 5000, "park")
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt64(&requests))
}

func TestGeocodeNormalizesQueryKey(t *testing.T) {
	var requests int64
	server := newNearbyServer(t, &requests, `{
		"status": "OK",
		"results": [{
			"formatted_address": "12 Main St, Springfield",
			"geometry": {"location": {"lat": 41.1, "lng": -72.2}}
		}]
	}`)
	defer server.Close()

	ps := NewPlacesService("key", server.URL, 0, time.Second)

	first, err := ps.Geocode(context.Background(), "12 Main St")
	require.NoError(t, err)
	require.Equal(t, "12 Main St, Springfield", first.FormattedAddress)

	// Case and surrounding whitespace collapse to the same key.
	second, err := ps.Geocode(context.Background(), "  12 MAIN st ")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, atomic.LoadInt64(&requests))
}

func TestGetPlaceDetail(t *testing.T) {
	var requests int64
	server := newNearbyServer(t, &requests, `{
		"status": "OK",
		"result": {
			"name": "Adventure Park",
			"formatted_address": "12 Main St",
			"geometry": {"location": {"lat": 40.78, "lng": -73.96}},
			"rating": 4.5,
			"opening_hours": {"open_now": true}
		}
	}`)
	defer server.Close()

	ps := NewPlacesService("key", server.URL, 0, time.Second)

	detail, err := ps.GetPlaceDetail(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Adventure Park", detail.Name)
	require.True(t, detail.OpenNow)
	require.Equal(t, 40.78, detail.Latitude)

	_, err = ps.GetPlaceDetail(context.Background(), "p1")
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt64(&requests))
}

func TestEvictExpiredSweep(t *testing.T) {
	ps := NewPlacesService("key", "http://places.test", 0, time.Second)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ps.now = func() time.Time { return now }

	ps.store("short", "a", time.Minute)
	ps.store("forever", "b", 0)

	now = now.Add(2 * time.Minute)
	ps.evictExpired()

	_, ok := ps.lookup("short")
	require.False(t, ok)
	v, ok := ps.lookup("forever")
	require.True(t, ok)
	require.Equal(t, "b", v)
}
