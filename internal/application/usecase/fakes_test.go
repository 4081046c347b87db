package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

type memProducts struct{ list []*entity.Product }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	p.ID = int64(len(m.list) + 1)
	m.list = append(m.list, p)
	return nil
}
func (m *memProducts) GetByID(_ context.Context, _, id int64) (*entity.Product, error) {
	for _, p := range m.list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memProducts) Update(context.Context, *entity.Product) error { return nil }
func (m *memProducts) List(_ context.Context, f repository.ListFilter) ([]*entity.Product, int, error) {
	return m.list, len(m.list), nil
}
func (m *memProducts) ListActive(context.Context, int64, int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.list {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) Delete(context.Context, int64, int64) error { return nil }

type memMovements struct{ list []*entity.StockMovement }

func (m *memMovements) Create(_ context.Context, mv *entity.StockMovement) error {
	mv.ID = int64(len(m.list) + 1)
	m.list = append(m.list, mv)
	return nil
}
func (m *memMovements) GetByID(_ context.Context, _, id int64) (*entity.StockMovement, error) {
	for _, mv := range m.list {
		if mv.ID == id {
			return mv, nil
		}
	}
	return nil, nil
}
func (m *memMovements) ListByProducts(_ context.Context, _, branchID int64, ids []int64) (map[int64][]*entity.StockMovement, error) {
	out := map[int64][]*entity.StockMovement{}
	for _, mv := range m.list {
		if branchID != 0 && mv.BranchID != branchID {
			continue
		}
		out[mv.ProductID] = append(out[mv.ProductID], mv)
	}
	return out, nil
}
func (m *memMovements) List(context.Context, repository.ListFilter) ([]*entity.StockMovement, int, error) {
	return m.list, len(m.list), nil
}
func (m *memMovements) Delete(_ context.Context, _, id int64) error {
	for i, mv := range m.list {
		if mv.ID == id {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return nil
		}
	}
	return nil
}

type memCategories struct{ list []*entity.ServiceCategory }

func (m *memCategories) Create(_ context.Context, c *entity.ServiceCategory) error {
	c.ID = int64(len(m.list) + 1)
	m.list = append(m.list, c)
	return nil
}
func (m *memCategories) GetByID(_ context.Context, _, id int64) (*entity.ServiceCategory, error) {
	for _, c := range m.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCategories) Update(context.Context, *entity.ServiceCategory) error { return nil }
func (m *memCategories) List(context.Context, int64) ([]*entity.ServiceCategory, error) {
	return m.list, nil
}
func (m *memCategories) Delete(context.Context, int64, int64) error { return nil }

type memBookings struct {
	list       []*entity.Booking
	attendants map[int64][]int64
	services   map[int64][]int64
	failOn     string
}

func newMemBookings() *memBookings {
	return &memBookings{attendants: map[int64][]int64{}, services: map[int64][]int64{}}
}

func (m *memBookings) Create(_ context.Context, b *entity.Booking) error {
	b.ID = int64(len(m.list) + 1)
	m.list = append(m.list, b)
	return nil
}
func (m *memBookings) GetByID(_ context.Context, _, id int64) (*entity.Booking, error) {
	for _, b := range m.list {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}
func (m *memBookings) Update(context.Context, *entity.Booking) error { return nil }
func (m *memBookings) UpdateStatus(ctx context.Context, orgID, id int64, status string) error {
	b, _ := m.GetByID(ctx, orgID, id)
	if b == nil {
		return errors.New("not found")
	}
	b.Status = status
	return nil
}
func (m *memBookings) List(context.Context, repository.ListFilter) ([]*entity.Booking, int, error) {
	return m.list, len(m.list), nil
}
func (m *memBookings) Delete(context.Context, int64, int64) error { return nil }
func (m *memBookings) ReplaceAttendants(_ context.Context, id int64, ids []int64) error {
	m.attendants[id] = ids
	return nil
}
func (m *memBookings) ReplaceServices(_ context.Context, id int64, ids []int64) error {
	if m.failOn == "services" {
		return errors.New("fk violation")
	}
	m.services[id] = ids
	return nil
}

// bookingRunner simula la tx: si fn falla se descartan las reservas creadas en ella.
type bookingRunner struct{ repo *memBookings }

func (r bookingRunner) RunBooking(ctx context.Context, fn func(repository.BookingRepository) error) error {
	n := len(r.repo.list)
	if err := fn(r.repo); err != nil {
		r.repo.list = r.repo.list[:n]
		return err
	}
	return nil
}

type memCustomers struct{ list []*entity.Customer }

func (m *memCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (m *memCustomers) GetByID(_ context.Context, _, id int64) (*entity.Customer, error) {
	for _, c := range m.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCustomers) Update(context.Context, *entity.Customer) error { return nil }
func (m *memCustomers) List(context.Context, repository.ListFilter) ([]*entity.Customer, int, error) {
	return m.list, len(m.list), nil
}
func (m *memCustomers) Delete(context.Context, int64, int64) error { return nil }
