package dto

import "time"

// BookingRequest alta o edición de reserva. ScheduleDate YYYY-MM-DD, TimeStart HH:MM.
type BookingRequest struct {
	BranchID     int64   `json:"branch_id" validate:"required,gt=0"`
	CustomerID   int64   `json:"customer_id" validate:"required,gt=0"`
	DoctorID     *int64  `json:"doctor_id" validate:"omitempty,gt=0"`
	ScheduleDate string  `json:"schedule_date" validate:"required,datetime=2006-01-02"`
	TimeStart    string  `json:"time_start" validate:"required,datetime=15:04"`
	Remarks      string  `json:"remarks" validate:"max=1000"`
	AttendantIDs []int64 `json:"attendant_ids" validate:"dive,gt=0"`
	ServiceIDs   []int64 `json:"service_ids" validate:"dive,gt=0"`
}

// BookingStatusRequest cambio de estado.
type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending scheduled re-scheduled done completed canceled"`
}

// BookingResponse salida de una reserva.
type BookingResponse struct {
	ID           int64     `json:"id"`
	BranchID     int64     `json:"branch_id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	DoctorID     *int64    `json:"doctor_id,omitempty"`
	ScheduleDate string    `json:"schedule_date"`
	TimeStart    string    `json:"time_start"`
	Status       string    `json:"status"`
	Remarks      string    `json:"remarks"`
	CreatedBy    string    `json:"created_by"`
	AttendantIDs []int64   `json:"attendant_ids"`
	ServiceIDs   []int64   `json:"service_ids"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingListResponse lista paginada de reservas.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
