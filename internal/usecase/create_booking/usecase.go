package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/internal/service/allocator"
	"github.com/lensbook/PhotoBookingService/internal/service/duration"
	"github.com/lensbook/PhotoBookingService/internal/service/schedule"
	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка идут в одной сериализуемой транзакции
// с блокировкой строк этой даты (FOR UPDATE) - из двух конкурирующих
// созданий на один слот пройдёт не больше одного. Календарные события
// создаются после коммита: их отсутствие не отменяет бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, customer=%s", req.Date, req.StartTime, req.CustomerName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбор даты в локальной таймзоне бизнеса
	date, err := uc.calendar.ParseLocalDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	// 3. Расчёт длительности съёмки; время прибытия - запрошенное начало
	apptStart, err := req.StartTime.At(date, uc.calendar.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	quote := uc.policy.Quote(ctx, duration.QuoteInputs{
		SquareFootage: req.SquareFootage,
		PropertyPrice: req.PropertyPrice,
		ServiceType:   req.ServiceType,
		Address:       req.PropertyAddress,
		BookingTime:   &apptStart,
	})

	endTime, err := req.StartTime.AddMinutes(quote.AppointmentMinutes())
	if err != nil {
		return nil, fmt.Errorf("%w: appointment does not fit the day", ErrInvalidInput)
	}

	// 4. Проверка доступности и вставка в сериализуемой транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Свежее перечисление слотов; запрошенный должен быть в нём
		slots, err := uc.allocator.ListSlots(txCtx, allocator.Request{
			Date:      date,
			Quote:     quote,
			Address:   req.PropertyAddress,
			Resources: uc.resources,
		})
		if err != nil {
			if errors.Is(err, schedule.ErrNotBookable) {
				uc.logger.Warn("CreateBooking: date %s not bookable: %v", req.Date, err)
				return fmt.Errorf("%w: %v", ErrDateNotBookable, err)
			}
			uc.logger.Error("CreateBooking: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		resourceID, ok := findSlotResource(slots, req.StartTime)
		if !ok {
			uc.logger.Warn("CreateBooking: slot %s %s is not available", req.Date, req.StartTime)
			return ErrSlotNotAvailable
		}

		// 4.2. Активные бронирования этой даты с блокировкой (FOR UPDATE).
		// Конкурирующее создание ещё не записало календарные события,
		// поэтому календарная проверка выше его не видит - ловим по БД.
		existing, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if uc.hasDBConflict(txCtx, existing, resourceID, req.StartTime, quote) {
			uc.logger.Warn("CreateBooking: slot %s %s conflicts with a stored booking", req.Date, req.StartTime)
			return ErrSlotNotAvailable
		}

		// 4.3. Сохраняем бронирование; события календаря допишем после
		booking := &domain.Booking{
			BookingDate: date,
			StartTime:   req.StartTime,
			EndTime:     endTime,
			Customer: domain.Customer{
				Name:  req.CustomerName,
				Email: req.CustomerEmail,
				Phone: req.CustomerPhone,
			},
			PropertyAddress: req.PropertyAddress,
			PropertyCity:    req.PropertyCity,
			Notes:           req.Notes,
			Status:          domain.StatusConfirmed,
			ResourceID:      resourceID,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, resource=%s", created.ID, created.ResourceID)

	// 5. Публикация календарных событий (после коммита)
	eventIDs, err := uc.publisher.Publish(ctx, created, quote.TravelBufferMinutes)
	if err != nil {
		// Бронирование уже сохранено; событие допишется вручную или
		// повторной публикацией
		uc.logger.Error("CreateBooking: booking id=%d: calendar publish failed: %v", created.ID, err)
	}
	if eventIDs.Appointment != nil || eventIDs.TravelTo != nil || eventIDs.TravelFrom != nil {
		if err := uc.bookingRepo.UpdateEventIDs(ctx, created.ID, eventIDs); err != nil {
			uc.logger.Error("CreateBooking: booking id=%d: failed to store event ids: %v", created.ID, err)
		}
	}

	return &Response{
		ID:              created.ID,
		BookingDate:     created.BookingDate,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		Status:          string(created.Status),
		ResourceID:      created.ResourceID,
		DurationMinutes: quote.AppointmentMinutes(),
		TravelMinutes:   quote.TravelBufferMinutes,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// hasDBConflict проверяет пересечение с сохранёнными бронированиями
// того же фотографа. Интервалы раздуваются travel-буферами с обеих
// сторон; границы впритык конфликтом не считаются.
func (uc *UseCase) hasDBConflict(ctx context.Context, existing []*domain.Booking, resourceID string, startTime types.TimeString, quote domain.DurationQuote) bool {
	startMin, err := startTime.Minutes()
	if err != nil {
		return true
	}
	newStart := startMin - quote.TravelBufferMinutes
	newEnd := startMin + quote.AppointmentMinutes() + quote.TravelBufferMinutes

	for _, b := range existing {
		if !b.IsActive() || b.ResourceID != resourceID {
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
