package get_available_slots_range

import (
	getAvailableSlotsRange "github.com/lensbook/PhotoBookingService/internal/usecase/get_available_slots_range"
)

// DateSlotResponse дата, доступная для времени начала
type DateSlotResponse struct {
	Date       string `json:"date"`
	EndTime    string `json:"endTime"`
	ResourceID string `json:"resourceId"`
	Primary    bool   `json:"primary"`
}

// TimeSlotsResponse даты одного времени начала
type TimeSlotsResponse struct {
	StartTime string             `json:"startTime"`
	Dates     []DateSlotResponse `json:"dates"`
}

// AvailableSlotsRangeResponse HTTP response model
type AvailableSlotsRangeResponse struct {
	DurationMinutes int                 `json:"durationMinutes"`
	TravelMinutes   int                 `json:"travelMinutes"`
	Times           []TimeSlotsResponse `json:"times"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlotsRange.Response) *AvailableSlotsRangeResponse {
	times := make([]TimeSlotsResponse, 0, len(resp.Times))
	for _, ts := range resp.Times {
		entry := TimeSlotsResponse{
			StartTime: ts.StartTime.String(),
			Dates:     make([]DateSlotResponse, 0, len(ts.Dates)),
		}
		for _, d := range ts.Dates {
			entry.Dates = append(entry.Dates, DateSlotResponse{
				Date:       d.Date,
				EndTime:    d.EndTime.String(),
				ResourceID: d.ResourceID,
				Primary:    d.IsPrimaryResource,
			})
		}
		times = append(times, entry)
	}
	return &AvailableSlotsRangeResponse{
		DurationMinutes: resp.DurationMinutes,
		TravelMinutes:   resp.TravelMinutes,
		Times:           times,
	}
}
