package get_bookings

import (
	"context"
	"fmt"

	"github.com/lensbook/PhotoBookingService/internal/domain"
)

// UseCase use case получения списка бронирований
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

// Execute выполняет use case получения списка бронирований
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		s := domain.BookingStatus(*req.Status)
		if s != domain.StatusConfirmed && s != domain.StatusCancelled {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		status = &s
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ResourceID:       req.ResourceID,
		Status:           status,
		IncludeCancelled: req.IncludeCancelled,
	})
	if err != nil {
		uc.logger.Error("GetBookings: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, Booking{
			ID:              b.ID,
			BookingDate:     b.BookingDate,
			StartTime:       b.StartTime,
			EndTime:         b.EndTime,
			Status:          string(b.Status),
			ResourceID:      b.ResourceID,
			CustomerName:    b.Customer.Name,
			PropertyAddress: b.PropertyAddress,
			PropertyCity:    b.PropertyCity,
		})
	}

	return &Response{Bookings: out}, nil
}
