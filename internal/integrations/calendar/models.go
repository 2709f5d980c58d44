package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// Client интерфейс внешнего календаря.
// Реализации: LiveClient (hosted calendar API) и FakeClient (in-memory).
// Вариант выбирается один раз при создании, а не проверкой флага на
// каждом вызове.
type Client interface {
	// GetBusyIntervals возвращает занятые интервалы по каждому ресурсу
	// за окно [from, to). Ошибка по одному ресурсу не прерывает
	// остальные: такой ресурс помечается Failed (fail closed).
	GetBusyIntervals(ctx context.Context, resourceIDs []string, from, to time.Time) (map[string]domain.ResourceBusy, error)

	CreateEvent(ctx context.Context, resourceID string, event *EventPayload) (string, error)
	GetEvent(ctx context.Context, resourceID, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, resourceID, eventID string, event *EventPayload) error
	DeleteEvent(ctx context.Context, resourceID, eventID string) error
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

// EventPayload данные для создания/обновления события.
// Start и End - абсолютные UTC моменты.
type EventPayload struct {
	Subject  string
	Body     string
	Start    time.Time
	End      time.Time
	Location string
	ShowAs   domain.BusyStatus
}

// Event событие календаря
type Event struct {
	ID       string
	Subject  string
	Body     string
	Start    time.Time
	End      time.Time
	Location string
	ShowAs   domain.BusyStatus
}

// wire-модели hosted calendar API

// apiDateTime время события с квалификацией таймзоны.
// API отдаёт wall-clock время плюс имя зоны; его нужно интерпретировать
// в УКАЗАННОЙ зоне, а не в локальной зоне сервера.
type apiDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// toUTC разбирает wall-clock время в заявленной зоне и приводит к UTC
func (t *apiDateTime) toUTC() (time.Time, error) {
	loc := time.UTC
	if t.TimeZone != "" && t.TimeZone != "UTC" {
		parsed, err := time.LoadLocation(t.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: unknown time zone %q", ErrInvalidResponse, t.TimeZone)
		}
		loc = parsed
	}

	// API отдаёт дробные секунды переменной длины, обрезаем их
	raw := t.DateTime
	if idx := len("2006-01-02T15:04:05"); len(raw) > idx {
		raw = raw[:idx]
	}

	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parse event time %q: %v", ErrInvalidResponse, t.DateTime, err)
	}
	return parsed.UTC(), nil
}

func newAPIDateTime(t time.Time) apiDateTime {
	return apiDateTime{
		DateTime: t.UTC().Format("2006-01-02T15:04:05"),
		TimeZone: "UTC",
	}
}

type apiLocation struct {
	DisplayName string `json:"displayName"`
}

type apiEvent struct {
	ID       string      `json:"id"`
	Subject  string      `json:"subject"`
	Body     string      `json:"body,omitempty"`
	ShowAs   string      `json:"showAs"`
	Start    apiDateTime `json:"start"`
	End      apiDateTime `json:"end"`
	Location apiLocation `json:"location"`
}

type apiBusyResponse struct {
	Value []apiEvent `json:"value"`
}

type apiCreateEventResponse struct {
	ID string `json:"id"`
}

// toBusyStatus маппит статус API в доменный; неизвестные статусы
// считаются busy (fail closed)
func toBusyStatus(s string) domain.BusyStatus {
	switch s {
	case "free":
		return domain.BusyStatusFree
	case "tentative":
		return domain.BusyStatusTentative
	case "oof", "outOfOffice":
		return domain.BusyStatusOutOfOffice
	case "busy":
		return domain.BusyStatusBusy
	default:
		return domain.BusyStatusBusy
	}
}
