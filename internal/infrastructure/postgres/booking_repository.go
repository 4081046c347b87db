package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implementación de BookingRepository (usable con pool o tx).
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador.
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

// time_start se lee como texto: pgx no mapea TIME a time.Time.
const bookingColumns = `b.id, b.org_id, b.branch_id, b.customer_id, b.doctor_id, b.schedule_date, b.time_start::text,
	b.status, b.remarks, b.created_by, b.created_at, COALESCE(c.name, '')`

const bookingFrom = ` FROM bookings b LEFT JOIN customers c ON c.id = b.customer_id`

const pgTimeLayout = "15:04:05"

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	var start, customerName string
	if err := row.Scan(&b.ID, &b.OrgID, &b.BranchID, &b.CustomerID, &b.DoctorID, &b.ScheduleDate, &start,
		&b.Status, &b.Remarks, &b.CreatedBy, &b.CreatedAt, &customerName); err != nil {
		return nil, err
	}
	t, err := time.Parse(pgTimeLayout, start)
	if err != nil {
		return nil, fmt.Errorf("time_start %q: %w", start, err)
	}
	b.TimeStart = t
	b.Customer = &entity.Customer{ID: b.CustomerID, Name: customerName}
	return &b, nil
}

// Create persiste la cabecera; asistentes y servicios van con ReplaceAttendants/ReplaceServices.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (org_id, branch_id, customer_id, doctor_id, schedule_date, time_start, status, remarks,
			created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::text::time, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, b.OrgID, b.BranchID, b.CustomerID, b.DoctorID, b.ScheduleDate,
		b.TimeStart.Format(pgTimeLayout), b.Status, b.Remarks, b.CreatedBy, b.CreatedAt).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert booking: %w", writeErr(err))
	}
	return nil
}

// GetByID obtiene la reserva con sus asistentes y servicios; nil si no existe.
func (r *BookingRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.Booking, error) {
	b, err := scanBooking(r.q.QueryRow(ctx, `SELECT `+bookingColumns+bookingFrom+` WHERE b.org_id = $1 AND b.id = $2`, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b.AttendantIDs, err = r.childIDs(ctx, `SELECT user_id FROM booking_attendants WHERE booking_id = $1 ORDER BY user_id`, b.ID); err != nil {
		return nil, fmt.Errorf("get booking attendants: %w", err)
	}
	if b.ServiceIDs, err = r.childIDs(ctx, `SELECT service_id FROM booking_services WHERE booking_id = $1 ORDER BY service_id`, b.ID); err != nil {
		return nil, fmt.Errorf("get booking services: %w", err)
	}
	return b, nil
}

func (r *BookingRepo) childIDs(ctx context.Context, query string, bookingID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *BookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	query := `
		UPDATE bookings SET customer_id = $3, doctor_id = $4, schedule_date = $5, time_start = $6::text::time,
			status = $7, remarks = $8
		WHERE org_id = $1 AND id = $2`
	err := updateErr(r.q.Exec(ctx, query, b.OrgID, b.ID, b.CustomerID, b.DoctorID, b.ScheduleDate,
		b.TimeStart.Format(pgTimeLayout), b.Status, b.Remarks))
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, orgID, id int64, status string) error {
	if err := updateErr(r.q.Exec(ctx, `UPDATE bookings SET status = $3 WHERE org_id = $1 AND id = $2`, orgID, id, status)); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

// List listado paginado, más recientes primero; Search filtra por nombre de cliente.
func (r *BookingRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Booking, int, error) {
	where := ` WHERE b.org_id = $1 AND ($2::bigint = 0 OR b.branch_id = $2) AND ($3::text = '' OR c.name ILIKE $4)`
	args := []any{f.OrgID, f.BranchID, f.Search, likePattern(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+bookingFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	list, err := queryBookings(ctx, r.q, `SELECT `+bookingColumns+bookingFrom+where+`
		ORDER BY b.schedule_date DESC, b.time_start DESC, b.id DESC LIMIT $5 OFFSET $6`, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func queryBookings(ctx context.Context, q Querier, sql string, args ...any) ([]*entity.Booking, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Delete elimina la reserva; asistentes y servicios caen en cascada.
func (r *BookingRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM bookings WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// ReplaceAttendants reemplaza el conjunto de asistentes. Debe correr dentro de la transacción de la reserva.
func (r *BookingRepo) ReplaceAttendants(ctx context.Context, bookingID int64, userIDs []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM booking_attendants WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("clear booking attendants: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `INSERT INTO booking_attendants (booking_id, user_id)
		SELECT $1, u FROM unnest($2::bigint[]) AS u ON CONFLICT DO NOTHING`, bookingID, userIDs)
	if err != nil {
		return fmt.Errorf("insert booking attendants: %w", writeErr(err))
	}
	return nil
}

// ReplaceServices reemplaza el conjunto de servicios de la reserva.
func (r *BookingRepo) ReplaceServices(ctx context.Context, bookingID int64, serviceIDs []int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM booking_services WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("clear booking services: %w", err)
	}
	if len(serviceIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `INSERT INTO booking_services (booking_id, service_id)
		SELECT $1, s FROM unnest($2::bigint[]) AS s ON CONFLICT DO NOTHING`, bookingID, serviceIDs)
	if err != nil {
		return fmt.Errorf("insert booking services: %w", writeErr(err))
	}
	return nil
}
