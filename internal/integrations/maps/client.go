package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultRouteSeconds оценка времени в пути по умолчанию (~25 миль / 30
// минут), используется когда сервис карт недоступен
const DefaultRouteSeconds = 30 * 60

// Client клиент геокодинга и маршрутов с внутренними кэшами.
//
// Кэш геокодинга живёт всё время работы процесса. Кэш времени в пути
// имеет TTL и ключ, включающий час прибытия: запросы в пределах одного
// часа делят одну запись. Просроченные записи вычищаются при чтении.
// Результаты fallback кэшируются так же, чтобы повторные сбои не били
// по сети.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
	metrics    ExternalMetrics

	homeBase  LatLng
	routeTTL  time.Duration
	fallbacks []Fallback

	mu           sync.Mutex
	geocodeCache map[string]LatLng
	routeCache   map[string]routeEntry

	// timeNow подменяется в тестах
	timeNow func() time.Time
}

type routeEntry struct {
	seconds  int
	storedAt time.Time
}

// NewClient создает новый клиент карт.
// metrics может быть nil, если метрики отключены.
func NewClient(baseURL, apiKey string, timeout time.Duration, homeBase LatLng, routeTTL time.Duration, fallbacks []Fallback, log Logger, metrics ExternalMetrics) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:          log,
		metrics:      metrics,
		homeBase:     homeBase,
		routeTTL:     routeTTL,
		fallbacks:    fallbacks,
		geocodeCache: make(map[string]LatLng),
		routeCache:   make(map[string]routeEntry),
		timeNow:      time.Now,
	}
}

// normalizeAddress нормализует адрес для ключа кэша
func normalizeAddress(address string) string {
	return strings.ToUpper(strings.TrimSpace(address))
}

// routeCacheKey ключ кэша времени в пути: нормализованный адрес плюс
// час прибытия (время округляется вниз до часа)
func routeCacheKey(address string, arrival *time.Time) string {
	key := normalizeAddress(address)
	if arrival != nil {
		key += "|" + arrival.UTC().Truncate(time.Hour).Format(time.RFC3339)
	}
	return key
}

// Geocode возвращает координаты адреса.
// Результат кэшируется по нормализованному адресу без TTL.
// При сбое геокодинга проверяется таблица fallback-координат.
func (c *Client) Geocode(ctx context.Context, address string) (LatLng, error) {
	key := normalizeAddress(address)

	c.mu.Lock()
	if cached, ok := c.geocodeCache[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	point, err := c.fetchGeocode(ctx, address)
	if err != nil {
		// Сбой геокодинга: пробуем таблицу известных адресов
		if fallback, ok := c.lookupFallback(key); ok {
			c.log.Warn("Maps: geocoding failed for %q, using fallback coordinates: %v", address, err)
			c.storeGeocode(key, fallback)
			return fallback, nil
		}
		return LatLng{}, err
	}

	c.storeGeocode(key, point)
	return point, nil
}

func (c *Client) storeGeocode(key string, point LatLng) {
	c.mu.Lock()
	c.geocodeCache[key] = point
	c.mu.Unlock()
}

func (c *Client) lookupFallback(normalizedAddress string) (LatLng, bool) {
	for _, f := range c.fallbacks {
		if strings.Contains(normalizedAddress, strings.ToUpper(f.Substring)) {
			return LatLng{Lat: f.Lat, Lng: f.Lng}, true
		}
	}
	return LatLng{}, false
}

// RouteDurationSeconds возвращает время в пути в секундах от студии до
// адреса. arrival, если задан, используется как основа для расчёта
// трафика. При любом сбое возвращается DefaultRouteSeconds, и это
// значение тоже кэшируется.
func (c *Client) RouteDurationSeconds(ctx context.Context, destination string, arrival *time.Time) (int, error) {
	key := routeCacheKey(destination, arrival)
	now := c.timeNow()

	c.mu.Lock()
	if entry, ok := c.routeCache[key]; ok {
		// Просроченные записи вычищаются при чтении
		if now.Sub(entry.storedAt) < c.routeTTL {
			c.mu.Unlock()
			return entry.seconds, nil
		}
		delete(c.routeCache, key)
	}
	c.mu.Unlock()

	seconds, err := c.fetchRouteDuration(ctx, destination, arrival)
	if err != nil {
		// Fallback на оценку по умолчанию; кэшируем, чтобы повторные
		// сбои не ходили в сеть
		c.log.Warn("Maps: route lookup failed for %q, using default estimate: %v", destination, err)
		seconds = DefaultRouteSeconds
	}

	c.mu.Lock()
	c.routeCache[key] = routeEntry{seconds: seconds, storedAt: now}
	c.mu.Unlock()

	return seconds, nil
}

func (c *Client) fetchGeocode(ctx context.Context, address string) (LatLng, error) {
	endpoint := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))

	var response geocodeResponse
	if err := c.doJSON(ctx, endpoint, &response, "maps_geocode"); err != nil {
		return LatLng{}, err
	}

	if response.Status != "OK" || len(response.Results) == 0 {
		return LatLng{}, fmt.Errorf("%w: status=%s results=%d", ErrGeocodeFailed, response.Status, len(response.Results))
	}

	location := response.Results[0].Geometry.Location
	return LatLng{Lat: location.Lat, Lng: location.Lng}, nil
}

func (c *Client) fetchRouteDuration(ctx context.Context, destination string, arrival *time.Time) (int, error) {
	point, err := c.Geocode(ctx, destination)
	if err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("%s/directions/json?origin=%f,%f&destination=%f,%f&key=%s",
		c.baseURL, c.homeBase.Lat, c.homeBase.Lng, point.Lat, point.Lng, url.QueryEscape(c.apiKey))

	// Время прибытия - основа для расчёта трафика
	if arrival != nil {
		endpoint += fmt.Sprintf("&arrival_time=%d", arrival.Unix())
	}

	var response directionsResponse
	if err := c.doJSON(ctx, endpoint, &response, "maps_directions"); err != nil {
		return 0, err
	}

	if response.Status != "OK" || len(response.Routes) == 0 || len(response.Routes[0].Legs) == 0 {
		return 0, fmt.Errorf("%w: status=%s", ErrNoRoute, response.Status)
	}

	leg := response.Routes[0].Legs[0]
	if leg.DurationInTraffic != nil {
		return leg.DurationInTraffic.Value, nil
	}
	return leg.Duration.Value, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, out interface{}, target string) error {
	start := time.Now()
	err := c.do(ctx, endpoint, out)
	if c.metrics != nil {
		c.metrics.ObserveExternalRequest(target, err, time.Since(start))
	}
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
