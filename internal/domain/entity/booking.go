package entity

import "time"

// Estados de una reserva.
const (
	BookingPending     = "pending"
	BookingScheduled   = "scheduled"
	BookingRescheduled = "re-scheduled"
	BookingDone        = "done"
	BookingCompleted   = "completed"
	BookingCanceled    = "canceled"
)

// ValidBookingStatus indica si s es un estado de reserva conocido.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingScheduled, BookingRescheduled, BookingDone, BookingCompleted, BookingCanceled:
		return true
	}
	return false
}

// Booking representa una cita agendada en una sucursal.
type Booking struct {
	ID           int64
	OrgID        int64
	BranchID     int64
	CustomerID   int64
	DoctorID     *int64
	ScheduleDate time.Time // solo fecha
	TimeStart    time.Time
	Status       string
	Remarks      string
	CreatedBy    string
	CreatedAt    time.Time

	Customer    *Customer
	AttendantIDs []int64
	ServiceIDs   []int64
}
