package get_booking

import (
	"context"
	"errors"
	"fmt"

	storage "github.com/lensbook/PhotoBookingService/internal/infra/storage/booking"
)

// UseCase use case получения бронирования по ID
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("GetBooking: failed to get booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return &Response{
		ID:                 booking.ID,
		BookingDate:        booking.BookingDate,
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		Status:             string(booking.Status),
		ResourceID:         booking.ResourceID,
		CustomerName:       booking.Customer.Name,
		CustomerEmail:      booking.Customer.Email,
		CustomerPhone:      booking.Customer.Phone,
		PropertyAddress:    booking.PropertyAddress,
		PropertyCity:       booking.PropertyCity,
		Notes:              booking.Notes,
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}, nil
}
