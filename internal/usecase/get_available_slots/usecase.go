package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/internal/service/schedule"
)

// UseCase use case получения доступных слотов на дату
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

// Execute выполняет use case получения слотов.
// Дата, на которую нельзя записаться (прошлое, выходной, отсечка),
// возвращает пустой список, а не ошибку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, address=%q", req.Date, req.Address)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбор даты в локальной таймзоне бизнеса
	date, err := uc.dateParser.ParseLocalDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	// 3. Расчёт длительности съёмки
	quote := uc.policy.Quote(ctx, duration.QuoteInputs{
		SquareFootage: req.SquareFootage,
		PropertyPrice: req.PropertyPrice,
		ServiceType:   req.ServiceType,
		Address:       req.Address,
	})

	// 4. Перечисление слотов
	slots, err := uc.allocator.ListSlots(ctx, allocator.Request{
		Date:      date,
		Quote:     quote,
		Address:   req.Address,
		Resources: uc.resources,
	})
	if err != nil {
		// Недоступная для записи дата - это пустой результат, не ошибка
		if errors.Is(err, schedule.ErrNotBookable) {
			uc.logger.Info("GetAvailableSlots: date %s not bookable: %v", req.Date, err)
			return uc.emptyResponse(req.Date, quote), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, %d slots found", req.Date, len(slots))

	return toResponse(req.Date, quote, slots), nil
}

func (uc *UseCase) emptyResponse(date string, quote domain.DurationQuote) *Response {
	return &Response{
		Date:            date,
		DurationMinutes: quote.AppointmentMinutes(),
		TravelMinutes:   quote.TravelBufferMinutes,
		Slots:           []Slot{},
	}
}

func toResponse(date string, quote domain.DurationQuote, slots []domain.Slot) *Response {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, Slot{
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			ResourceID:        s.ResourceID,
			IsPrimaryResource: s.IsPrimaryResource,
		})
	}
	return &Response{
		Date:            date,
		DurationMinutes: quote.AppointmentMinutes(),
		TravelMinutes:   quote.TravelBufferMinutes,
		Slots:           out,
	}
}
