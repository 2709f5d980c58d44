package domain

import (
	"time"

	"github.com/lensbook/PhotoBookingService/pkg/types"
)

// Slot represents a bookable time span for the shoot itself, excluding
// the travel wings before and after it
type Slot struct {
	Date              time.Time
	StartTime         types.TimeString
	EndTime           types.TimeString
	ResourceID        string
	IsPrimaryResource bool
}

// BusyStatus availability status of a calendar event
type BusyStatus string

const (
	BusyStatusBusy        BusyStatus = "busy"
	BusyStatusTentative   BusyStatus = "tentative"
	BusyStatusOutOfOffice BusyStatus = "outOfOffice"
	BusyStatusFree        BusyStatus = "free"
)

// Blocks reports whether an event with this status makes the resource
// unavailable for a slot
func (s BusyStatus) Blocks() bool {
	return s == BusyStatusBusy || s == BusyStatusTentative || s == BusyStatusOutOfOffice
}

// BusyInterval a blocked interval on a resource's calendar.
// Start and End are absolute UTC instants.
type BusyInterval struct {
	ResourceID string
	Start      time.Time
	End        time.Time
	Status     BusyStatus
	Subject    string
	Location   string
}

// Overlaps reports whether the interval overlaps [start, end).
// Half-open semantics: touching boundaries do not overlap.
func (b *BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}

// ResourceBusy результат запроса занятости для одного фотографа.
// Failed = true означает, что календарь не ответил; такой ресурс
// считается полностью занятым (fail closed).
type ResourceBusy struct {
	Intervals []BusyInterval
	Failed    bool
}
