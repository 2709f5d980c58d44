package get_bookings

import (
	"context"

	getBookings "github.com/lensbook/PhotoBookingService/internal/usecase/get_bookings"
)

type GetBookingsUseCase interface {
	Execute(ctx context.Context, req *getBookings.Request) (*getBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
