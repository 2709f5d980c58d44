package get_available_slots_range

import (
	"context"

	getAvailableSlotsRange "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_slots_range"
)

type GetAvailableSlotsRangeUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlotsRange.Request) (*getAvailableSlotsRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
