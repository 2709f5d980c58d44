package maps

import "time"

// LatLng координаты точки
type LatLng struct {
	Lat float64
	Lng float64
}

// Fallback координаты для адреса, который геокодер не разбирает.
// Подстановка по вхождению подстроки в нормализованный адрес.
type Fallback struct {
	Substring string
	Lat       float64
	Lng       float64
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ExternalMetrics интерфейс сборщика метрик внешних вызовов (может быть nil)
type ExternalMetrics interface {
	ObserveExternalRequest(target string, err error, duration time.Duration)
}

// wire-модели Geocoding / Directions API

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // секунды
			} `json:"duration"`
			DurationInTraffic *struct {
				Value int `json:"value"` // секунды
			} `json:"duration_in_traffic"`
		} `json:"legs"`
	} `json:"routes"`
}
