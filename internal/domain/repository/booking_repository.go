package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// BookingRepository define el puerto de persistencia para reservas y sus tablas hijas.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.Booking, error)
	Update(ctx context.Context, b *entity.Booking) error
	UpdateStatus(ctx context.Context, orgID, id int64, status string) error
	// List ordena por schedule_date y time_start descendente. Search filtra remarks.
	List(ctx context.Context, f ListFilter) ([]*entity.Booking, int, error)
	Delete(ctx context.Context, orgID, id int64) error

	// ReplaceAttendants y ReplaceServices borran y reinsertan las filas hijas.
	ReplaceAttendants(ctx context.Context, bookingID int64, userIDs []int64) error
	ReplaceServices(ctx context.Context, bookingID int64, serviceIDs []int64) error
}
