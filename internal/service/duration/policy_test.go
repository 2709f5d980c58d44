package duration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lensbook/PhotoBookingService/internal/domain"
	"github.com/lensbook/PhotoBookingService/pkg/ptr"
)

type stubTravel struct {
	buffer int

	lastAddress string
	lastArrival *time.Time
	calls       int
}

func (s *stubTravel) BufferMinutes(ctx context.Context, address string, arrival *time.Time) int {
	s.calls++
	s.lastAddress = address
	s.lastArrival = arrival
	return s.buffer
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestPolicy_Quote(t *testing.T) {
	tests := []struct {
		name   string
		inputs QuoteInputs
		buffer int

		wantBase      int
		wantSurcharge int
		wantBuffer    int
		wantTotal     int
	}{
		{
			name:      "small property",
			inputs:    QuoteInputs{SquareFootage: ptr.Ptr(2200)},
			wantBase:  60,
			wantTotal: 60,
		},
		{
			name:      "medium property",
			inputs:    QuoteInputs{SquareFootage: ptr.Ptr(3500)},
			wantBase:  90,
			wantTotal: 90,
		},
		{
			name:      "large property",
			inputs:    QuoteInputs{SquareFootage: ptr.Ptr(5200)},
			wantBase:  120,
			wantTotal: 120,
		},
		{
			name:      "boundary 3000 sqft is medium",
			inputs:    QuoteInputs{SquareFootage: ptr.Ptr(3000)},
			wantBase:  90,
			wantTotal: 90,
		},
		{
			name:      "boundary 4000 sqft is large",
			inputs:    QuoteInputs{SquareFootage: ptr.Ptr(4000)},
			wantBase:  120,
			wantTotal: 120,
		},
		{
			name:          "mid price surcharge",
			inputs:        QuoteInputs{SquareFootage: ptr.Ptr(2500), PropertyPrice: ptr.Ptr(1_500_000.0)},
			wantBase:      60,
			wantSurcharge: 30,
			wantTotal:     90,
		},
		{
			name:          "high price surcharge",
			inputs:        QuoteInputs{SquareFootage: ptr.Ptr(2500), PropertyPrice: ptr.Ptr(5_000_000.0)},
			wantBase:      60,
			wantSurcharge: 60,
			wantTotal:     120,
		},
		{
			name:      "cheap property no surcharge",
			inputs:    QuoteInputs{SquareFootage: ptr.Ptr(2500), PropertyPrice: ptr.Ptr(800_000.0)},
			wantBase:  60,
			wantTotal: 60,
		},
		{
			name:      "no sqft falls back to standard service",
			inputs:    QuoteInputs{ServiceType: domain.ServiceTypeStandard},
			wantBase:  120,
			wantTotal: 120,
		},
		{
			name:      "no sqft falls back to extended service",
			inputs:    QuoteInputs{ServiceType: domain.ServiceTypeExtended},
			wantBase:  180,
			wantTotal: 180,
		},
		{
			name:      "unknown service type gets default",
			inputs:    QuoteInputs{ServiceType: "drone"},
			wantBase:  60,
			wantTotal: 60,
		},
		{
			name:      "nothing at all gets maximum base",
			inputs:    QuoteInputs{},
			wantBase:  120,
			wantTotal: 120,
		},
		{
			name:       "address adds symmetric travel buffer",
			inputs:     QuoteInputs{SquareFootage: ptr.Ptr(2500), Address: "123 Main St"},
			buffer:     60,
			wantBase:   60,
			wantBuffer: 60,
			wantTotal:  180,
		},
		{
			name:          "everything combined",
			inputs:        QuoteInputs{SquareFootage: ptr.Ptr(3500), PropertyPrice: ptr.Ptr(2_000_000.0), Address: "123 Main St"},
			buffer:        30,
			wantBase:      90,
			wantSurcharge: 30,
			wantBuffer:    30,
			wantTotal:     180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			travel := &stubTravel{buffer: tt.buffer}
			policy := NewPolicy(travel, nopLogger{})

			quote := policy.Quote(context.Background(), tt.inputs)

			assert.Equal(t, tt.wantBase, quote.BaseMinutes)
			assert.Equal(t, tt.wantSurcharge, quote.PriceSurchargeMinutes)
			assert.Equal(t, tt.wantBuffer, quote.TravelBufferMinutes)
			assert.Equal(t, tt.wantTotal, quote.TotalMinutes)
			assert.Equal(t, tt.wantBase+tt.wantSurcharge, quote.AppointmentMinutes())
		})
	}
}

func TestPolicy_Quote_NoTravelWithoutAddress(t *testing.T) {
	travel := &stubTravel{buffer: 60}
	policy := NewPolicy(travel, nopLogger{})

	quote := policy.Quote(context.Background(), QuoteInputs{SquareFootage: ptr.Ptr(2500)})

	assert.Zero(t, quote.TravelBufferMinutes)
	assert.Zero(t, travel.calls)
	assert.False(t, quote.HasTravel())
}

func TestPolicy_Quote_PassesBookingTime(t *testing.T) {
	travel := &stubTravel{buffer: 30}
	policy := NewPolicy(travel, nopLogger{})

	bookingTime := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	policy.Quote(context.Background(), QuoteInputs{
		SquareFootage: ptr.Ptr(2500),
		Address:       "123 Main St",
		BookingTime:   &bookingTime,
	})

	assert.Equal(t, "123 Main St", travel.lastAddress)
	assert.Equal(t, &bookingTime, travel.lastArrival)
}
