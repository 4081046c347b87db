package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

// BookingTxRunner ejecuta fn en una transacción con el repositorio de reservas atado a ella.
type BookingTxRunner interface {
	RunBooking(ctx context.Context, fn func(repo repository.BookingRepository) error) error
}

const timeLayout = "15:04"

// BookingUseCase agenda de reservas por sucursal.
type BookingUseCase struct {
	tx           BookingTxRunner
	repo         repository.BookingRepository
	customerRepo repository.CustomerRepository
}

// NewBookingUseCase construye el caso de uso.
func NewBookingUseCase(tx BookingTxRunner, repo repository.BookingRepository, customerRepo repository.CustomerRepository) *BookingUseCase {
	return &BookingUseCase{tx: tx, repo: repo, customerRepo: customerRepo}
}

// List listado paginado por sucursal; Search filtra remarks.
func (uc *BookingUseCase) List(ctx context.Context, orgID int64, q dto.ListQuery) (*dto.BookingListResponse, error) {
	f := toFilter(orgID, q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, ToBookingResponse(b))
	}
	return &dto.BookingListResponse{Items: items, Page: pageOf(f, total)}, nil
}

// GetByID obtiene una reserva con sus asistentes y servicios. branchID 0 = cualquier sucursal.
func (uc *BookingUseCase) GetByID(ctx context.Context, orgID, branchID, id int64) (*dto.BookingResponse, error) {
	b, err := uc.load(ctx, orgID, branchID, id)
	if err != nil {
		return nil, err
	}
	out := ToBookingResponse(b)
	return &out, nil
}

// Create crea la reserva en estado "pending" junto con asistentes y servicios.
func (uc *BookingUseCase) Create(ctx context.Context, orgID int64, createdBy string, in dto.BookingRequest) (*dto.BookingResponse, error) {
	b := &entity.Booking{
		OrgID:     orgID,
		Status:    entity.BookingPending,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if err := uc.apply(ctx, orgID, b, in); err != nil {
		return nil, err
	}
	err := uc.tx.RunBooking(ctx, func(repo repository.BookingRepository) error {
		if err := repo.Create(ctx, b); err != nil {
			return err
		}
		return replaceChildren(ctx, repo, b)
	})
	if err != nil {
		return nil, err
	}
	out := ToBookingResponse(b)
	return &out, nil
}

// Update reemplaza los datos de la reserva; asistentes y servicios se borran y reinsertan.
func (uc *BookingUseCase) Update(ctx context.Context, orgID, branchID, id int64, in dto.BookingRequest) (*dto.BookingResponse, error) {
	b, err := uc.load(ctx, orgID, branchID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, orgID, b, in); err != nil {
		return nil, err
	}
	err = uc.tx.RunBooking(ctx, func(repo repository.BookingRepository) error {
		if err := repo.Update(ctx, b); err != nil {
			return err
		}
		return replaceChildren(ctx, repo, b)
	})
	if err != nil {
		return nil, err
	}
	out := ToBookingResponse(b)
	return &out, nil
}

// UpdateStatus cambia el estado de la reserva.
func (uc *BookingUseCase) UpdateStatus(ctx context.Context, orgID, branchID, id int64, in dto.BookingStatusRequest) (*dto.BookingResponse, error) {
	if !entity.ValidBookingStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.load(ctx, orgID, branchID, id); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, orgID, id, in.Status); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, orgID, branchID, id)
}

// Delete elimina la reserva (las filas hijas caen por cascada).
func (uc *BookingUseCase) Delete(ctx context.Context, orgID, branchID, id int64) error {
	if _, err := uc.load(ctx, orgID, branchID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, orgID, id)
}

func (uc *BookingUseCase) load(ctx context.Context, orgID, branchID, id int64) (*entity.Booking, error) {
	b, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if b == nil || !inScope(branchID, b.BranchID) {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (uc *BookingUseCase) apply(ctx context.Context, orgID int64, b *entity.Booking, in dto.BookingRequest) error {
	date, err := time.Parse(dateLayout, strings.TrimSpace(in.ScheduleDate))
	if err != nil {
		return domain.ErrInvalidInput
	}
	start, err := time.Parse(timeLayout, strings.TrimSpace(in.TimeStart))
	if err != nil {
		return domain.ErrInvalidInput
	}
	c, err := uc.customerRepo.GetByID(ctx, orgID, in.CustomerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	b.BranchID = in.BranchID
	b.CustomerID = c.ID
	b.Customer = c
	b.DoctorID = in.DoctorID
	b.ScheduleDate = date
	b.TimeStart = start
	b.Remarks = strings.TrimSpace(in.Remarks)
	b.AttendantIDs = uniqueIDs(in.AttendantIDs)
	b.ServiceIDs = uniqueIDs(in.ServiceIDs)
	return nil
}

func replaceChildren(ctx context.Context, repo repository.BookingRepository, b *entity.Booking) error {
	if err := repo.ReplaceAttendants(ctx, b.ID, b.AttendantIDs); err != nil {
		return err
	}
	return repo.ReplaceServices(ctx, b.ID, b.ServiceIDs)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ToBookingResponse convierte la entidad a DTO.
func ToBookingResponse(b *entity.Booking) dto.BookingResponse {
	out := dto.BookingResponse{
		ID:           b.ID,
		BranchID:     b.BranchID,
		CustomerID:   b.CustomerID,
		DoctorID:     b.DoctorID,
		ScheduleDate: b.ScheduleDate.Format(dateLayout),
		TimeStart:    b.TimeStart.Format(timeLayout),
		Status:       b.Status,
		Remarks:      b.Remarks,
		CreatedBy:    b.CreatedBy,
		AttendantIDs: b.AttendantIDs,
		ServiceIDs:   b.ServiceIDs,
		CreatedAt:    b.CreatedAt,
	}
	if out.AttendantIDs == nil {
		out.AttendantIDs = []int64{}
	}
	if out.ServiceIDs == nil {
		out.ServiceIDs = []int64{}
	}
	if b.Customer != nil {
		out.CustomerName = b.Customer.Name
	}
	return out
}
