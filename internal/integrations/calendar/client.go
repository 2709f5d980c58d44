package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// LiveClient клиент hosted calendar API
type LiveClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
	metrics    ExternalMetrics
}

// NewLiveClient создает новый экземпляр клиента календаря.
// metrics может быть nil, если метрики отключены.
func NewLiveClient(baseURL, token string, timeout time.Duration, log Logger, metrics ExternalMetrics) *LiveClient {
	return &LiveClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// GetBusyIntervals получает занятые интервалы для каждого ресурса.
// Ошибка по одному ресурсу не прерывает остальные: ресурс помечается
// Failed, и вызывающий код считает его полностью занятым.
// Если не ответил ни один ресурс, возвращается ErrAllResourcesFailed.
func (c *LiveClient) GetBusyIntervals(ctx context.Context, resourceIDs []string, from, to time.Time) (map[string]domain.ResourceBusy, error) {
	result := make(map[string]domain.ResourceBusy, len(resourceIDs))
	failed := 0

	for _, resourceID := range resourceIDs {
		intervals, err := c.getResourceBusy(ctx, resourceID, from, to)
		if err != nil {
			c.log.Error("Calendar: busy lookup failed for resource=%s: %v", resourceID, err)
			result[resourceID] = domain.ResourceBusy{Failed: true}
			failed++
			continue
		}
		result[resourceID] = domain.ResourceBusy{Intervals: intervals}
	}

	if len(resourceIDs) > 0 && failed == len(resourceIDs) {
		return result, ErrAllResourcesFailed
	}

	return result, nil
}

func (c *LiveClient) getResourceBusy(ctx context.Context, resourceID string, from, to time.Time) ([]domain.BusyInterval, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/busy?start=%s&end=%s",
		c.baseURL,
		url.PathEscape(resourceID),
		url.QueryEscape(from.UTC().Format(time.RFC3339)),
		url.QueryEscape(to.UTC().Format(time.RFC3339)),
	)

	var response apiBusyResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response, "calendar_busy"); err != nil {
		return nil, err
	}

	intervals := make([]domain.BusyInterval, 0, len(response.Value))
	for _, event := range response.Value {
		status := toBusyStatus(event.ShowAs)
		// Свободные события слот не блокируют
		if !status.Blocks() {
			continue
		}

		start, err := event.Start.toUTC()
		if err != nil {
			return nil, err
		}
		end, err := event.End.toUTC()
		if err != nil {
			return nil, err
		}

		intervals = append(intervals, domain.BusyInterval{
			ResourceID: resourceID,
			Start:      start,
			End:        end,
			Status:     status,
			Subject:    event.Subject,
			Location:   event.Location.DisplayName,
		})
	}

	return intervals, nil
}

// CreateEvent создает событие в календаре ресурса и возвращает его ID
func (c *LiveClient) CreateEvent(ctx context.Context, resourceID string, event *EventPayload) (string, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(resourceID))

	var response apiCreateEventResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, toAPIEvent(event), &response, "calendar_create_event"); err != nil {
		return "", err
	}

	if response.ID == "" {
		return "", fmt.Errorf("%w: create event returned empty id", ErrInvalidResponse)
	}

	return response.ID, nil
}

// GetEvent получает событие по ID
func (c *LiveClient) GetEvent(ctx context.Context, resourceID, eventID string) (*Event, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(resourceID), url.PathEscape(eventID))

	var response apiEvent
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &response, "calendar_get_event"); err != nil {
		return nil, err
	}

	start, err := response.Start.toUTC()
	if err != nil {
		return nil, err
	}
	end, err := response.End.toUTC()
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:       response.ID,
		Subject:  response.Subject,
		Body:     response.Body,
		Start:    start,
		End:      end,
		Location: response.Location.DisplayName,
		ShowAs:   toBusyStatus(response.ShowAs),
	}, nil
}

// UpdateEvent обновляет событие
func (c *LiveClient) UpdateEvent(ctx context.Context, resourceID, eventID string, event *EventPayload) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(resourceID), url.PathEscape(eventID))

	return c.doJSON(ctx, http.MethodPatch, endpoint, toAPIEvent(event), nil, "calendar_update_event")
}

// DeleteEvent удаляет событие
func (c *LiveClient) DeleteEvent(ctx context.Context, resourceID, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(resourceID), url.PathEscape(eventID))

	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil, "calendar_delete_event")
}

func toAPIEvent(event *EventPayload) *apiEvent {
	return &apiEvent{
		Subject:  event.Subject,
		Body:     event.Body,
		ShowAs:   string(event.ShowAs),
		Start:    newAPIDateTime(event.Start),
		End:      newAPIDateTime(event.End),
		Location: apiLocation{DisplayName: event.Location},
	}
}

// doJSON выполняет запрос с авторизацией, декодирует JSON ответ в out
// (если out != nil) и снимает метрику вызова
func (c *LiveClient) doJSON(ctx context.Context, method, endpoint string, body interface{}, out interface{}, target string) error {
	start := time.Now()
	err := c.do(ctx, method, endpoint, body, out)
	if c.metrics != nil {
		c.metrics.ObserveExternalRequest(target, err, time.Since(start))
	}
	return err
}

func (c *LiveClient) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrEventNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
