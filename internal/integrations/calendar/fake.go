package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// FakeClient in-memory реализация календаря для локальной разработки
// и тестов. Потокобезопасна.
type FakeClient struct {
	mu     sync.RWMutex
	events map[string]map[string]*Event // resourceID -> eventID -> event
	log    Logger
}

// NewFakeClient создает новый in-memory календарь
func NewFakeClient(log Logger) *FakeClient {
	return &FakeClient{
		events: make(map[string]map[string]*Event),
		log:    log,
	}
}

// GetBusyIntervals возвращает блокирующие события, пересекающие окно [from, to)
func (c *FakeClient) GetBusyIntervals(_ context.Context, resourceIDs []string, from, to time.Time) (map[string]domain.ResourceBusy, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]domain.ResourceBusy, len(resourceIDs))

	for _, resourceID := range resourceIDs {
		intervals := make([]domain.BusyInterval, 0)
		for _, event := range c.events[resourceID] {
			if !event.ShowAs.Blocks() {
				continue
			}
			if event.Start.Before(to) && from.Before(event.End) {
				intervals = append(intervals, domain.BusyInterval{
					ResourceID: resourceID,
					Start:      event.Start,
					End:        event.End,
					Status:     event.ShowAs,
					Subject:    event.Subject,
					Location:   event.Location,
				})
			}
		}
		result[resourceID] = domain.ResourceBusy{Intervals: intervals}
	}

	return result, nil
}

// CreateEvent создает событие и возвращает сгенерированный ID
func (c *FakeClient) CreateEvent(_ context.Context, resourceID string, event *EventPayload) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.events[resourceID] == nil {
		c.events[resourceID] = make(map[string]*Event)
	}

	id := uuid.NewString()
	c.events[resourceID][id] = &Event{
		ID:       id,
		Subject:  event.Subject,
		Body:     event.Body,
		Start:    event.Start.UTC(),
		End:      event.End.UTC(),
		Location: event.Location,
		ShowAs:   event.ShowAs,
	}

	c.log.Info("FakeCalendar: created event id=%s resource=%s subject=%q", id, resourceID, event.Subject)
	return id, nil
}

// GetEvent возвращает событие по ID
func (c *FakeClient) GetEvent(_ context.Context, resourceID, eventID string) (*Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	event, ok := c.events[resourceID][eventID]
	if !ok {
		return nil, ErrEventNotFound
	}

	copied := *event
	return &copied, nil
}

// UpdateEvent обновляет событие
func (c *FakeClient) UpdateEvent(_ context.Context, resourceID, eventID string, event *EventPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.events[resourceID][eventID]
	if !ok {
		return ErrEventNotFound
	}

	existing.Subject = event.Subject
	existing.Body = event.Body
	existing.Start = event.Start.UTC()
	existing.End = event.End.UTC()
	existing.Location = event.Location
	existing.ShowAs = event.ShowAs

	return nil
}

// DeleteEvent удаляет событие
func (c *FakeClient) DeleteEvent(_ context.Context, resourceID, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.events[resourceID][eventID]; !ok {
		return ErrEventNotFound
	}

	delete(c.events[resourceID], eventID)
	return nil
}
