package get_available_slots

import (
	getAvailableSlots "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_slots"
)

// SlotResponse один слот в HTTP ответе
type SlotResponse struct {
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	ResourceID string `json:"resourceId"`
	Primary    bool   `json:"primary"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	TravelMinutes   int            `json:"travelMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:  s.StartTime.String(),
			EndTime:    s.EndTime.String(),
			ResourceID: s.ResourceID,
			Primary:    s.IsPrimaryResource,
		})
	}
	return &AvailableSlotsResponse{
		Date:            resp.Date,
		DurationMinutes: resp.DurationMinutes,
		TravelMinutes:   resp.TravelMinutes,
		Slots:           slots,
	}
}
