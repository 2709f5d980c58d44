package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/internal/service/schedule"
)

// UseCase use case получения доступных дат за период
type UseCase struct {
	allocator  SlotAllocator
	policy     DurationPolicy
	dateParser DateParser
	resources  []domain.Resource
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotAllocator SlotAllocator,
	policy DurationPolicy,
	dateParser DateParser,
	resources []domain.Resource,
	logger Logger,
) *UseCase {
	return &UseCase{
		allocator:  slotAllocator,
		policy:     policy,
		dateParser: dateParser,
		resources:  resources,
		logger:     logger,
	}
}

// Execute выполняет use case получения доступных дат.
// Дата попадает в ответ, если на неё есть хотя бы один слот.
// Недоступные для записи даты (прошлое, выходные, отсечка) молча
// пропускаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: period=%s..%s, address=%q", req.StartDate, req.EndDate, req.Address)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбор периода в локальной таймзоне бизнеса
	start, end, err := uc.parseRange(req)
	if err != nil {
		return nil, err
	}

	// 3. Расчёт длительности съёмки (одна на весь период)
	quote := uc.policy.Quote(ctx, duration.QuoteInputs{
		SquareFootage: req.SquareFootage,
		PropertyPrice: req.PropertyPrice,
		ServiceType:   req.ServiceType,
		Address:       req.Address,
	})

	// 4. Перебор дат периода
	dates := make([]string, 0)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		found, err := uc.allocator.HasAnySlot(ctx, allocator.Request{
			Date:      date,
			Quote:     quote,
			Address:   req.Address,
			Resources: uc.resources,
		})
		if err != nil {
			if errors.Is(err, schedule.ErrNotBookable) {
				continue
			}
			uc.logger.Error("GetAvailableDates: date %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to check date: %v", ErrInternal, err)
		}
		if found {
			dates = append(dates, date.Format(domain.DateFormat))
		}
	}

	uc.logger.Info("GetAvailableDates: %d of %d dates available",
		len(dates), int(end.Sub(start).Hours()/24)+1)

	return &Response{Dates: dates}, nil
}

func (uc *UseCase) parseRange(req *Request) (time.Time, time.Time, error) {
	start, err := uc.dateParser.ParseLocalDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid startDate %q", ErrInvalidInput, req.StartDate)
	}
	end, err := uc.dateParser.ParseLocalDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid endDate %q", ErrInvalidInput, req.EndDate)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if end.Sub(start) > time.Duration(domain.MaxDateRangeDays)*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: at most %d days", ErrRangeTooWide, domain.MaxDateRangeDays)
	}

	return start, end, nil
}
