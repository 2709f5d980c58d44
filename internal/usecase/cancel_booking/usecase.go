package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	storage "github.com/lensbook/PhotoBookingService/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, publisher EventPublisher, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Сначала отменяется строка в БД (освобождает слот для DB-проверок),
// затем best-effort удаляются календарные события. Уже удалённые
// события ошибкой не считаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: id=%d", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d has status %s", req.ID, booking.Status)
		return nil, ErrAlreadyCancelled
	}

	// 3. Отменяем строку в БД
	if err := uc.bookingRepo.Cancel(ctx, req.ID, req.Reason); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	// 4. Удаляем календарные события (best-effort)
	uc.publisher.Remove(ctx, booking.ResourceID, booking.EventIDs)

	uc.logger.Info("CancelBooking: booking id=%d cancelled", req.ID)

	return &Response{
		ID:     req.ID,
		Status: string(domain.StatusCancelled),
	}, nil
}
