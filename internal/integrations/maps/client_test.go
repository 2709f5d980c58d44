package maps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// testServer считает запросы по эндпоинтам и отдаёт управляемые ответы
type testServer struct {
	*httptest.Server

	geocodeCalls    int
	directionsCalls int

	geocodeStatus  string
	routeSeconds   int
	trafficSeconds *int
	failGeocode    bool
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		geocodeStatus: "OK",
		routeSeconds:  25 * 60,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		ts.geocodeCalls++
		if ts.failGeocode {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"status":%q,"results":[{"geometry":{"location":{"lat":40.1,"lng":-74.2}}}]}`, ts.geocodeStatus)
	})
	mux.HandleFunc("/directions/json", func(w http.ResponseWriter, r *http.Request) {
		ts.directionsCalls++
		traffic := ""
		if ts.trafficSeconds != nil {
			traffic = fmt.Sprintf(`,"duration_in_traffic":{"value":%d}`, *ts.trafficSeconds)
		}
		fmt.Fprintf(w, `{"status":"OK","routes":[{"legs":[{"duration":{"value":%d}%s}]}]}`, ts.routeSeconds, traffic)
	})

	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(server *testServer, fallbacks []Fallback) *Client {
	return NewClient(
		server.URL,
		"test-key",
		5*time.Second,
		LatLng{Lat: 40.7, Lng: -74.0},
		30*time.Minute,
		fallbacks,
		nopLogger{},
		nil,
	)
}

func TestClient_Geocode(t *testing.T) {
	t.Run("caches by normalized address", func(t *testing.T) {
		server := newTestServer(t)
		client := newTestClient(server, nil)

		first, err := client.Geocode(context.Background(), "123 Main St")
		require.NoError(t, err)
		assert.Equal(t, LatLng{Lat: 40.1, Lng: -74.2}, first)

		// Регистр и пробелы не порождают новый запрос
		second, err := client.Geocode(context.Background(), "  123 main st ")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, server.geocodeCalls)
	})

	t.Run("zero results is an error", func(t *testing.T) {
		server := newTestServer(t)
		server.geocodeStatus = "ZERO_RESULTS"
		client := newTestClient(server, nil)

		_, err := client.Geocode(context.Background(), "nowhere")
		assert.ErrorIs(t, err, ErrGeocodeFailed)
	})

	t.Run("falls back to known coordinates on failure", func(t *testing.T) {
		server := newTestServer(t)
		server.failGeocode = true
		client := newTestClient(server, []Fallback{
			{Substring: "Liberty Island", Lat: 40.6892, Lng: -74.0445},
		})

		point, err := client.Geocode(context.Background(), "1 Liberty Island Rd")
		require.NoError(t, err)
		assert.Equal(t, LatLng{Lat: 40.6892, Lng: -74.0445}, point)

		// Fallback кэшируется: повторный вызов не ходит в сеть
		_, err = client.Geocode(context.Background(), "1 Liberty Island Rd")
		require.NoError(t, err)
		assert.Equal(t, 1, server.geocodeCalls)
	})
}

func TestClient_RouteDurationSeconds(t *testing.T) {
	t.Run("returns leg duration", func(t *testing.T) {
		server := newTestServer(t)
		client := newTestClient(server, nil)

		seconds, err := client.RouteDurationSeconds(context.Background(), "123 Main St", nil)
		require.NoError(t, err)
		assert.Equal(t, 25*60, seconds)
	})

	t.Run("prefers duration in traffic", func(t *testing.T) {
		server := newTestServer(t)
		traffic := 40 * 60
		server.trafficSeconds = &traffic
		client := newTestClient(server, nil)

		seconds, err := client.RouteDurationSeconds(context.Background(), "123 Main St", nil)
		require.NoError(t, err)
		assert.Equal(t, 40*60, seconds)
	})

	t.Run("caches within TTL", func(t *testing.T) {
		server := newTestServer(t)
		client := newTestClient(server, nil)

		now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
		client.timeNow = func() time.Time { return now }

		_, err := client.RouteDurationSeconds(context.Background(), "123 Main St", nil)
		require.NoError(t, err)
		_, err = client.RouteDurationSeconds(context.Background(), "123 Main St", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, server.directionsCalls)

		// После истечения TTL запись вычищается и запрос уходит в сеть
		now = now.Add(31 * time.Minute)
		_, err = client.RouteDurationSeconds(context.Background(), "123 Main St", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, server.directionsCalls)
	})

	t.Run("cache key includes arrival hour", func(t *testing.T) {
		server := newTestServer(t)
		client := newTestClient(server, nil)

		morning := time.Date(2026, 9, 14, 9, 10, 0, 0, time.UTC)
		sameHour := time.Date(2026, 9, 14, 9, 50, 0, 0, time.UTC)
		afternoon := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)

		_, err := client.RouteDurationSeconds(context.Background(), "123 Main St", &morning)
		require.NoError(t, err)
		_, err = client.RouteDurationSeconds(context.Background(), "123 Main St", &sameHour)
		require.NoError(t, err)
		assert.Equal(t, 1, server.directionsCalls)

		_, err = client.RouteDurationSeconds(context.Background(), "123 Main St", &afternoon)
		require.NoError(t, err)
		assert.Equal(t, 2, server.directionsCalls)
	})

	t.Run("falls back to default estimate and caches it", func(t *testing.T) {
		server := newTestServer(t)
		server.failGeocode = true
		client := newTestClient(server, nil)

		seconds, err := client.RouteDurationSeconds(context.Background(), "123 Main St", nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultRouteSeconds, seconds)

		// Повторный сбойный адрес берётся из кэша
		_, err = client.RouteDurationSeconds(context.Background(), "123 Main St", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, server.geocodeCalls)
	})
}

func TestRouteCacheKey(t *testing.T) {
	arrival := time.Date(2026, 9, 14, 9, 45, 0, 0, time.UTC)

	withArrival := routeCacheKey("123 Main St", &arrival)
	assert.True(t, strings.HasPrefix(withArrival, "123 MAIN ST|"))
	assert.Contains(t, withArrival, "09:00:00")

	withoutArrival := routeCacheKey("  123 Main St ", nil)
	assert.Equal(t, "123 MAIN ST", withoutArrival)
}
