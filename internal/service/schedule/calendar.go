package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// Repository интерфейс хранилища рабочих часов и выходных
type Repository interface {
	// GetOperatingWindow возвращает строку рабочих часов для дня недели.
	// Если строки нет, возвращает (nil, nil).
	GetOperatingWindow(ctx context.Context, weekday time.Weekday) (*domain.OperatingWindow, error)
	// IsHoliday проверяет наличие активной записи о выходном на дату
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Calendar решает, можно ли записаться на дату, и возвращает рабочие
// часы. Все правила работают в фиксированной локальной таймзоне
// бизнеса; день недели берётся от локальной календарной даты, а не от
// UTC-сдвинутого момента.
type Calendar struct {
	repo         Repository
	loc          *time.Location
	cutoffHour   int
	timeProvider TimeProvider
	log          Logger
}

// NewCalendar создает новый операционный календарь
func NewCalendar(repo Repository, loc *time.Location, cutoffHour int, log Logger) *Calendar {
	return &Calendar{
		repo:         repo,
		loc:          loc,
		cutoffHour:   cutoffHour,
		timeProvider: &RealTimeProvider{},
		log:          log,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (c *Calendar) WithTimeProvider(tp TimeProvider) *Calendar {
	c.timeProvider = tp
	return c
}

// Location возвращает таймзону бизнеса
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// ParseLocalDate разбирает дату YYYY-MM-DD как локальную полночь
// бизнеса. Разбор в UTC с последующей конвертацией сдвигал бы день
// недели для западных таймзон.
func (c *Calendar) ParseLocalDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, c.loc)
}

// WindowFor возвращает рабочие часы на дату либо одну из ошибок
// ErrNotBookable, если запись на эту дату невозможна
func (c *Calendar) WindowFor(ctx context.Context, date time.Time) (*domain.OperatingWindow, error) {
	if err := c.checkDatePolicy(date); err != nil {
		return nil, err
	}

	holiday, err := c.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}
	if holiday {
		return nil, ErrHoliday
	}

	window, err := c.repo.GetOperatingWindow(ctx, c.localDate(date).Weekday())
	if err != nil {
		return nil, fmt.Errorf("%w: get operating window: %v", ErrInternal, err)
	}
	if window == nil || !window.IsActive {
		return nil, ErrClosed
	}

	return window, nil
}

// IsHoliday проверяет, является ли дата выходным днём студии
func (c *Calendar) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	holiday, err := c.repo.IsHoliday(ctx, c.localDate(date))
	if err != nil {
		return false, fmt.Errorf("%w: holiday lookup: %v", ErrInternal, err)
	}
	return holiday, nil
}

// checkDatePolicy применяет правила дат: прошлое, день в день,
// отсечка на завтра
func (c *Calendar) checkDatePolicy(date time.Time) error {
	now := c.timeProvider.Now().In(c.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
	target := c.localDate(date)

	switch {
	case target.Before(today):
		return ErrDateInPast
	case target.Equal(today):
		return ErrSameDay
	case target.Equal(today.AddDate(0, 0, 1)) && now.Hour() >= c.cutoffHour:
		return ErrAfterCutoff
	}

	return nil
}

// localDate обнуляет время, оставляя календарную дату в зоне бизнеса
func (c *Calendar) localDate(date time.Time) time.Time {
	d := date.In(c.loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.loc)
}
