package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var errBoom = errors.New("boom")

// memStore base en memoria; RunSale la restaura si fn falla.
type memStore struct {
	transactions []*entity.Transaction
	items        []*entity.TransactionItem
	movements    []*entity.StockMovement
	nextID       int64

	failLock, failList, failHeader, failItems, failMovement error
	locked                                                   []string
	// trace orden de bloqueos de fila y lecturas de líneas dentro de la tx
	trace []string
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	transactions []entity.Transaction
	items        []entity.TransactionItem
	movements    []*entity.StockMovement
	nextID       int64
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{movements: append([]*entity.StockMovement(nil), s.movements...), nextID: s.nextID}
	for _, t := range s.transactions {
		snap.transactions = append(snap.transactions, *t)
	}
	for _, it := range s.items {
		snap.items = append(snap.items, *it)
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.transactions = nil
	for i := range snap.transactions {
		t := snap.transactions[i]
		s.transactions = append(s.transactions, &t)
	}
	s.items = nil
	for i := range snap.items {
		it := snap.items[i]
		s.items = append(s.items, &it)
	}
	s.movements = snap.movements
	s.nextID = snap.nextID
}

type fakeRunner struct {
	store *memStore
	calls int
}

func (r *fakeRunner) RunSale(ctx context.Context, fn func(repository.TransactionRepository, repository.StockMovementRepository) error) error {
	r.calls++
	snap := r.store.snapshot()
	if err := fn(&fakeTxRepo{s: r.store}, &fakeMovRepo{s: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

type fakeTxRepo struct{ s *memStore }

func (f *fakeTxRepo) LockNumbering(_ context.Context, prefix string) error {
	if f.s.failLock != nil {
		return f.s.failLock
	}
	f.s.locked = append(f.s.locked, prefix)
	return nil
}

func (f *fakeTxRepo) LockForUpdate(_ context.Context, _, id int64) error {
	f.s.trace = append(f.s.trace, fmt.Sprintf("lock:%d", id))
	return nil
}

func (f *fakeTxRepo) ListNumbersWithPrefix(_ context.Context, orgID int64, prefix string) ([]string, error) {
	if f.s.failList != nil {
		return nil, f.s.failList
	}
	var out []string
	for _, t := range f.s.transactions {
		if t.OrgID == orgID && strings.HasPrefix(t.TransactionNumber, prefix+"-") {
			out = append(out, t.TransactionNumber)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) Create(_ context.Context, t *entity.Transaction) error {
	if f.s.failHeader != nil {
		return f.s.failHeader
	}
	t.ID = f.s.id()
	f.s.transactions = append(f.s.transactions, t)
	return nil
}

func (f *fakeTxRepo) CreateItems(_ context.Context, items []*entity.TransactionItem) error {
	if f.s.failItems != nil {
		return f.s.failItems
	}
	for _, it := range items {
		it.ID = f.s.id()
		f.s.items = append(f.s.items, it)
	}
	return nil
}

func (f *fakeTxRepo) GetByID(_ context.Context, orgID, id int64) (*entity.Transaction, error) {
	for _, t := range f.s.transactions {
		if t.ID == id && t.OrgID == orgID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTxRepo) ListItems(_ context.Context, transactionID int64) ([]*entity.TransactionItem, error) {
	f.s.trace = append(f.s.trace, fmt.Sprintf("items:%d", transactionID))
	var out []*entity.TransactionItem
	for _, it := range f.s.items {
		if it.TransactionID == transactionID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) List(_ context.Context, flt repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	var out []*entity.Transaction
	for i := len(f.s.transactions) - 1; i >= 0; i-- {
		t := f.s.transactions[i]
		if t.OrgID != flt.OrgID || (flt.CustomerID > 0 && t.CustomerID != flt.CustomerID) {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeTxRepo) UpdateReference(ctx context.Context, orgID, id int64, ref string) error {
	t, _ := f.GetByID(ctx, orgID, id)
	if t == nil {
		return errors.New("not found")
	}
	t.ReferenceNumber = ref
	return nil
}

func (f *fakeTxRepo) UpdateStatus(ctx context.Context, orgID, id int64, status string) error {
	t, _ := f.GetByID(ctx, orgID, id)
	if t == nil {
		return errors.New("not found")
	}
	t.Status = status
	return nil
}

func (f *fakeTxRepo) UpdateItemQuantity(_ context.Context, itemID, quantity int64) error {
	for _, it := range f.s.items {
		if it.ID == itemID {
			it.Quantity = quantity
			return nil
		}
	}
	return errors.New("not found")
}

type fakeMovRepo struct{ s *memStore }

func (f *fakeMovRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if f.s.failMovement != nil {
		return f.s.failMovement
	}
	m.ID = f.s.id()
	f.s.movements = append(f.s.movements, m)
	return nil
}

func (f *fakeMovRepo) GetByID(_ context.Context, _, id int64) (*entity.StockMovement, error) {
	for _, m := range f.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovRepo) ListByProducts(_ context.Context, _, _ int64, ids []int64) (map[int64][]*entity.StockMovement, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[int64][]*entity.StockMovement{}
	for _, m := range f.s.movements {
		if want[m.ProductID] {
			out[m.ProductID] = append(out[m.ProductID], m)
		}
	}
	return out, nil
}

func (f *fakeMovRepo) List(context.Context, repository.ListFilter) ([]*entity.StockMovement, int, error) {
	return f.s.movements, len(f.s.movements), nil
}

func (f *fakeMovRepo) Delete(context.Context, int64, int64) error { return nil }

type fakeProductRepo struct{ products []*entity.Product }

func (f *fakeProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(_ context.Context, _, id int64) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (f *fakeProductRepo) List(context.Context, repository.ListFilter) ([]*entity.Product, int, error) {
	return f.products, len(f.products), nil
}
func (f *fakeProductRepo) ListActive(context.Context, int64, int64) ([]*entity.Product, error) {
	return f.products, nil
}
func (f *fakeProductRepo) Delete(context.Context, int64, int64) error { return nil }

type fakeServiceRepo struct{ services []*entity.Service }

func (f *fakeServiceRepo) Create(context.Context, *entity.Service) error { return nil }
func (f *fakeServiceRepo) GetByID(context.Context, int64, int64) (*entity.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) Update(context.Context, *entity.Service) error { return nil }
func (f *fakeServiceRepo) List(context.Context, repository.ServiceFilter) ([]*entity.Service, int, error) {
	return f.services, len(f.services), nil
}
func (f *fakeServiceRepo) ListActive(context.Context, int64, int64) ([]*entity.Service, error) {
	return f.services, nil
}
func (f *fakeServiceRepo) Delete(context.Context, int64, int64) error { return nil }

type fakeCustomerRepo struct{ customers []*entity.Customer }

func (f *fakeCustomerRepo) Create(context.Context, *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(_ context.Context, _, id int64) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCustomerRepo) Update(context.Context, *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) List(context.Context, repository.ListFilter) ([]*entity.Customer, int, error) {
	return f.customers, len(f.customers), nil
}
func (f *fakeCustomerRepo) Delete(context.Context, int64, int64) error { return nil }

type fakeBranchRepo struct{}

func (fakeBranchRepo) Create(context.Context, *entity.Branch) error { return nil }
func (fakeBranchRepo) GetByID(_ context.Context, _, id int64) (*entity.Branch, error) {
	return &entity.Branch{ID: id, Name: "Centro"}, nil
}
func (fakeBranchRepo) Update(context.Context, *entity.Branch) error        { return nil }
func (fakeBranchRepo) List(context.Context, int64) ([]*entity.Branch, error) { return nil, nil }
func (fakeBranchRepo) Delete(context.Context, int64, int64) error          { return nil }

type fakeReceipts struct{ got *entity.Transaction }

func (f *fakeReceipts) GenerateReceipt(_ *entity.Branch, t *entity.Transaction, _ []*entity.TransactionItem) ([]byte, error) {
	f.got = t
	return []byte("%PDF-fake"), nil
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fakeListener struct {
	calls [][2]int64
}

func (l *fakeListener) SalesChanged(_ context.Context, orgID, branchID int64) {
	l.calls = append(l.calls, [2]int64{orgID, branchID})
}
