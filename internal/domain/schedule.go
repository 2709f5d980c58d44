package domain

import (
	"time"

	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// OperatingWindow open/close bounds for one weekday.
// At most one active row per weekday; an inactive or missing row means
// the day yields zero slots.
type OperatingWindow struct {
	ID        int64
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsActive  bool
}

// Holiday a fully unbookable date, regardless of operating hours
type Holiday struct {
	ID       int64
	Date     time.Time
	IsActive bool
}

// DurationQuote derived appointment duration for a request.
// Not persisted; recomputed per request.
// TotalMinutes = BaseMinutes + PriceSurchargeMinutes + 2*TravelBufferMinutes.
type DurationQuote struct {
	BaseMinutes           int
	PriceSurchargeMinutes int
	TravelBufferMinutes   int // one-way, applied symmetrically
	TotalMinutes          int
}

// AppointmentMinutes returns the inner shoot duration, excluding both
// travel wings
func (q *DurationQuote) AppointmentMinutes() int {
	return q.TotalMinutes - 2*q.TravelBufferMinutes
}

// HasTravel reports whether the quote includes a travel buffer
func (q *DurationQuote) HasTravel() bool {
	return q.TravelBufferMinutes > 0
}
