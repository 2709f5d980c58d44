package get_available_slots_range

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/internal/service/schedule"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// UseCase use case получения слотов за период, сгруппированных по дням
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

// Execute выполняет use case получения слотов за период. Слоты
// группируются по времени начала: каждое время несёт список дат, на
// которые оно доступно. Недоступные для записи даты пропускаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlotsRange: period=%s..%s, address=%q", req.StartDate, req.EndDate, req.Address)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlotsRange: validation failed: %v", err)
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

	// 4. Перебор дат периода с группировкой по времени начала
	byTime := make(map[types.TimeString][]DateSlot)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		slots, err := uc.allocator.ListSlots(ctx, allocator.Request{
			Date:      date,
			Quote:     quote,
			Address:   req.Address,
			Resources: uc.resources,
		})
		if err != nil {
			if errors.Is(err, schedule.ErrNotBookable) {
				continue
			}
			uc.logger.Error("GetAvailableSlotsRange: date %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		for _, s := range slots {
			byTime[s.StartTime] = append(byTime[s.StartTime], DateSlot{
				Date:              date.Format(domain.DateFormat),
				EndTime:           s.EndTime,
				ResourceID:        s.ResourceID,
				IsPrimaryResource: s.IsPrimaryResource,
			})
		}
	}

	// 5. Времена по возрастанию; даты внутри времени уже идут по
	// порядку перебора периода
	starts := make([]string, 0, len(byTime))
	for ts := range byTime {
		starts = append(starts, string(ts))
	}
	sort.Strings(starts)

	times := make([]TimeSlots, 0, len(starts))
	for _, s := range starts {
		ts := types.TimeString(s)
		times = append(times, TimeSlots{StartTime: ts, Dates: byTime[ts]})
	}

	uc.logger.Info("GetAvailableSlotsRange: %d start times with dates", len(times))

	return &Response{
		DurationMinutes: quote.AppointmentMinutes(),
		TravelMinutes:   quote.TravelBufferMinutes,
		Times:           times,
	}, nil
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
