package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	storage "github.com/lensbook/PhotoBookingService/internal/infra/storage/booking"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/internal/service/schedule"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	allocator   SlotAllocator
	policy      DurationPolicy
	publisher   EventPublisher
	travel      TravelEstimator
	calendar    BusinessCalendar
	txManager   TransactionManager
	resources   []domain.Resource
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotAllocator SlotAllocator,
	policy DurationPolicy,
	publisher EventPublisher,
	travel TravelEstimator,
	businessCalendar BusinessCalendar,
	txManager TransactionManager,
	resources []domain.Resource,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		allocator:   slotAllocator,
		policy:      policy,
		publisher:   publisher,
		travel:      travel,
		calendar:    businessCalendar,
		txManager:   txManager,
		resources:   resources,
		logger:      logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Старые календарные события удаляются ДО проверки доступности, иначе
// они заблокировали бы перенос в соседнее время того же дня. Если новый
// слот оказался занят, старые события восстанавливаются best-effort.
// Бронирования, созданные до модели из трёх событий, при переносе
// получают полный набор из трёх событий.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d, date=%s, time=%s", req.ID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeUpdated() {
		uc.logger.Warn("UpdateBooking: booking id=%d has status %s", req.ID, booking.Status)
		return nil, ErrCannotModify
	}

	// 3. Разбор новой даты и расчёт новой длительности
	date, err := uc.calendar.ParseLocalDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	address := booking.PropertyAddress
	if req.PropertyAddress != nil {
		address = *req.PropertyAddress
	}

	apptStart, err := req.StartTime.At(date, uc.calendar.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	quote := uc.policy.Quote(ctx, duration.QuoteInputs{
		SquareFootage: req.SquareFootage,
		PropertyPrice: req.PropertyPrice,
		ServiceType:   req.ServiceType,
		Address:       address,
		BookingTime:   &apptStart,
	})

	endTime, err := req.StartTime.AddMinutes(quote.AppointmentMinutes())
	if err != nil {
		return nil, fmt.Errorf("%w: appointment does not fit the day", ErrInvalidInput)
	}

	if booking.IsLegacySingleEvent() {
		uc.logger.Info("UpdateBooking: booking id=%d is a legacy single-event booking, recreating as three events", req.ID)
	}

	// 4. Убираем старые события, чтобы они не блокировали новый слот
	oldEventIDs := booking.EventIDs
	oldTravelMinutes := uc.storedTravelMinutes(ctx, booking)
	uc.publisher.Remove(ctx, booking.ResourceID, oldEventIDs)

	// 5. Проверка доступности и обновление в сериализуемой транзакции
	updated := *booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slots, err := uc.allocator.ListSlots(txCtx, allocator.Request{
			Date:      date,
			Quote:     quote,
			Address:   address,
			Resources: uc.resources,
		})
		if err != nil {
			if errors.Is(err, schedule.ErrNotBookable) {
				uc.logger.Warn("UpdateBooking: date %s not bookable: %v", req.Date, err)
				return fmt.Errorf("%w: %v", ErrDateNotBookable, err)
			}
			uc.logger.Error("UpdateBooking: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		resourceID, ok := findSlotResource(slots, req.StartTime)
		if !ok {
			uc.logger.Warn("UpdateBooking: slot %s %s is not available", req.Date, req.StartTime)
			return ErrSlotNotAvailable
		}

		// Активные бронирования новой даты с блокировкой (FOR UPDATE);
		// собственная строка из проверки исключается
		existing, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if uc.hasDBConflict(txCtx, existing, booking.ID, resourceID, req.StartTime, quote) {
			uc.logger.Warn("UpdateBooking: slot %s %s conflicts with a stored booking", req.Date, req.StartTime)
			return ErrSlotNotAvailable
		}

		updated.BookingDate = date
		updated.StartTime = req.StartTime
		updated.EndTime = endTime
		updated.PropertyAddress = address
		updated.ResourceID = resourceID
		if req.PropertyCity != nil {
			updated.PropertyCity = *req.PropertyCity
		}
		if req.Notes != nil {
			updated.Notes = req.Notes
		}

		if err := uc.bookingRepo.Update(txCtx, &updated); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Новый слот не прошёл - восстанавливаем старые события
		uc.restoreEvents(ctx, booking, oldTravelMinutes)
		return nil, err
	}

	// 6. Публикация новых событий
	eventIDs, err := uc.publisher.Publish(ctx, &updated, quote.TravelBufferMinutes)
	if err != nil {
		uc.logger.Error("UpdateBooking: booking id=%d: calendar publish failed: %v", updated.ID, err)
	}
	if err := uc.bookingRepo.UpdateEventIDs(ctx, updated.ID, eventIDs); err != nil {
		uc.logger.Error("UpdateBooking: booking id=%d: failed to store event ids: %v", updated.ID, err)
	}

	uc.logger.Info("UpdateBooking: booking id=%d moved to %s %s, resource=%s",
		updated.ID, req.Date, req.StartTime, updated.ResourceID)

	return &Response{
		ID:              updated.ID,
		BookingDate:     updated.BookingDate,
		StartTime:       updated.StartTime,
		EndTime:         updated.EndTime,
		Status:          string(updated.Status),
		ResourceID:      updated.ResourceID,
		DurationMinutes: quote.AppointmentMinutes(),
		TravelMinutes:   quote.TravelBufferMinutes,
		UpdatedAt:       updated.UpdatedAt,
	}, nil
}

// storedTravelMinutes восстанавливает travel-буфер сохранённого
// бронирования по его адресу (для восстановления событий)
func (uc *UseCase) storedTravelMinutes(ctx context.Context, booking *domain.Booking) int {
	if booking.PropertyAddress == "" {
		return 0
	}
	return uc.travel.BufferMinutes(ctx, booking.PropertyAddress, nil)
}

// restoreEvents восстанавливает события бронирования после неудачного
// переноса. Best-effort: при сбое остаётся бронирование без событий.
func (uc *UseCase) restoreEvents(ctx context.Context, booking *domain.Booking, travelMinutes int) {
	eventIDs, err := uc.publisher.Publish(ctx, booking, travelMinutes)
	if err != nil {
		uc.logger.Error("UpdateBooking: booking id=%d: failed to restore events: %v", booking.ID, err)
		return
	}
	if err := uc.bookingRepo.UpdateEventIDs(ctx, booking.ID, eventIDs); err != nil {
		uc.logger.Error("UpdateBooking: booking id=%d: failed to store restored event ids: %v", booking.ID, err)
	}
}

// hasDBConflict проверяет пересечение с сохранёнными бронированиями
// того же фотографа, кроме переносимого. Интервалы раздуваются
// travel-буферами с обеих сторон.
func (uc *UseCase) hasDBConflict(ctx context.Context, existing []*domain.Booking, selfID int64, resourceID string, startTime types.TimeString, quote domain.DurationQuote) bool {
	startMin, err := startTime.Minutes()
	if err != nil {
		return true
	}
	newStart := startMin - quote.TravelBufferMinutes
	newEnd := startMin + quote.AppointmentMinutes() + quote.TravelBufferMinutes

	for _, b := range existing {
		if b.ID == selfID || !b.IsActive() || b.ResourceID != resourceID {
			continue
		}

		bStart, err := b.StartTime.Minutes()
		if err != nil {
			continue
		}
		bEnd, err := b.EndTime.Minutes()
		if err != nil {
			continue
		}

		buffer := 0
		if b.PropertyAddress != "" {
			buffer = uc.travel.BufferMinutes(ctx, b.PropertyAddress, nil)
		}

		if newStart < bEnd+buffer && bStart-buffer < newEnd {
			return true
		}
	}

	return false
}

// findSlotResource находит фотографа для запрошенного времени начала
func findSlotResource(slots []domain.Slot, startTime types.TimeString) (string, bool) {
	for _, s := range slots {
		if s.StartTime == startTime {
			return s.ResourceID, true
		}
	}
	return "", false
}
