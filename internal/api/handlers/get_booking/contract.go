package get_booking

import (
	"context"

	getBooking "github.com/lensbook/PhotoBookingService/internal/usecase/get_booking"
)

type GetBookingUseCase interface {
	Execute(ctx context.Context, req *getBooking.Request) (*getBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
