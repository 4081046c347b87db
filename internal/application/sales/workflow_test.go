package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-pos/internal/domain/cart"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var fixedNow = time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

func newTestWorkflow(store *memStore) (*Workflow, *fakeRunner) {
	runner := &fakeRunner{store: store}
	wf := NewWorkflow(runner, time.UTC, nil)
	wf.now = func() time.Time { return fixedNow }
	return wf, runner
}

// carrito: producto A x2 a 10 + servicio B x1 a 50
func scenarioCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(cart.NewCatalog(
		[]cart.Product{{ID: 100, Name: "Producto A", Unit: "pieza", SellingPrice: dec(10)}},
		[]cart.Service{{ID: 200, Name: "Servicio B", BasePrice: dec(50)}},
	))
	require.True(t, c.AddProduct(100, 2))
	require.True(t, c.AddService(200))
	return c
}

func scenarioInput(c *cart.Cart) CommitInput {
	return CommitInput{Cart: c, OrgID: 1, BranchID: 3, CustomerID: 7, PaymentType: "Cash", UserID: 5}
}

func TestCommit_EndToEnd(t *testing.T) {
	store := &memStore{}
	wf, _ := newTestWorkflow(store)
	c := scenarioCart(t)

	res, err := wf.Commit(context.Background(), scenarioInput(c))
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, wf.State())
	assert.Nil(t, wf.LastError())
	assert.Equal(t, "20240307-1", res.TransactionNumber)
	assert.True(t, res.Total.Equal(dec(70)))
	assert.Equal(t, 0, c.Len(), "el carrito se vacía al confirmar")

	require.Len(t, store.transactions, 1)
	tx := store.transactions[0]
	assert.True(t, tx.TotalAmount.Equal(dec(70)))
	assert.Equal(t, res.TransactionID, tx.ID)
	assert.Equal(t, int64(7), tx.CustomerID)
	assert.Equal(t, "Cash", tx.PaymentType)
	assert.Equal(t, entity.TransactionCompleted, tx.Status)

	require.Len(t, store.items, 2)
	for _, it := range store.items {
		assert.Equal(t, tx.ID, it.TransactionID)
	}
	assert.Equal(t, int64(100), *store.items[0].ProductID)
	assert.Equal(t, int64(200), *store.items[1].ServiceID)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.StockOut, mov.Type)
	assert.Equal(t, int64(2), mov.Quantity)
	assert.Equal(t, int64(100), mov.ProductID)
	assert.Equal(t, tx.ID, *mov.TransactionID)

	assert.Equal(t, []string{"20240307"}, store.locked)
}

func TestCommit_SequenceContinuesWithinDay(t *testing.T) {
	store := &memStore{}
	store.transactions = []*entity.Transaction{
		{ID: 1, OrgID: 1, TransactionNumber: "20240307-9"},
		{ID: 2, OrgID: 1, TransactionNumber: "20240307-10"},
		{ID: 3, OrgID: 1, TransactionNumber: "20240306-40"},
	}
	store.nextID = 3
	wf, _ := newTestWorkflow(store)

	res, err := wf.Commit(context.Background(), scenarioInput(scenarioCart(t)))
	require.NoError(t, err)
	assert.Equal(t, "20240307-11", res.TransactionNumber)
}

func TestCommit_ValidationReturnsToIdleWithoutWrites(t *testing.T) {
	tests := []struct {
		name string
		in   func(c *cart.Cart) CommitInput
		want error
	}{
		{"carrito vacío", func(*cart.Cart) CommitInput {
			return CommitInput{Cart: cart.New(nil), OrgID: 1, BranchID: 3, CustomerID: 7, PaymentType: "Cash"}
		}, ErrEmptyCart},
		{"carrito nil", func(*cart.Cart) CommitInput {
			return CommitInput{OrgID: 1, BranchID: 3, CustomerID: 7, PaymentType: "Cash"}
		}, ErrEmptyCart},
		{"sin cliente", func(c *cart.Cart) CommitInput {
			in := scenarioInput(c)
			in.CustomerID = 0
			return in
		}, ErrMissingCustomer},
		{"sin tipo de pago", func(c *cart.Cart) CommitInput {
			in := scenarioInput(c)
			in.PaymentType = "  "
			return in
		}, ErrMissingPaymentType},
		{"sin sucursal", func(c *cart.Cart) CommitInput {
			in := scenarioInput(c)
			in.BranchID = 0
			return in
		}, ErrMissingBranch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			wf, runner := newTestWorkflow(store)

			res, err := wf.Commit(context.Background(), tt.in(scenarioCart(t)))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, StateIdle, wf.State())
			assert.ErrorIs(t, wf.LastError(), tt.want)
			assert.Equal(t, 0, runner.calls, "no debe abrir transacción")
			assert.Empty(t, store.transactions)
		})
	}
}

func TestCommit_StepFailureRollsBackAndKeepsCart(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(s *memStore)
		step   State
		target error
	}{
		{"bloqueo de numeración", func(s *memStore) { s.failLock = errBoom }, StateReservingReference, ErrReferenceGeneration},
		{"consulta de números", func(s *memStore) { s.failList = errBoom }, StateReservingReference, ErrReferenceGeneration},
		{"cabecera", func(s *memStore) { s.failHeader = errBoom }, StatePersistingHeader, ErrHeaderWrite},
		{"líneas", func(s *memStore) { s.failItems = errBoom }, StatePersistingItems, ErrItemWrite},
		{"movimientos", func(s *memStore) { s.failMovement = errBoom }, StatePersistingStockMovements, ErrStockWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			tt.setup(store)
			wf, _ := newTestWorkflow(store)
			c := scenarioCart(t)

			res, err := wf.Commit(context.Background(), scenarioInput(c))
			assert.Nil(t, res)

			var se *StepError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.step, se.Step)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, errBoom)
			assert.False(t, IsValidationError(err))

			assert.Equal(t, StateFailed, wf.State())
			assert.Equal(t, err, wf.LastError())
			assert.Equal(t, 2, c.Len(), "el carrito queda intacto para reintentar")

			assert.Empty(t, store.transactions)
			assert.Empty(t, store.items)
			assert.Empty(t, store.movements)
		})
	}
}

func TestCommit_RetryAfterFailure(t *testing.T) {
	store := &memStore{failItems: errBoom}
	wf, _ := newTestWorkflow(store)
	c := scenarioCart(t)

	_, err := wf.Commit(context.Background(), scenarioInput(c))
	require.Error(t, err)

	store.failItems = nil
	res, err := wf.Commit(context.Background(), scenarioInput(c))
	require.NoError(t, err)
	assert.Equal(t, "20240307-1", res.TransactionNumber, "el número perdido se reutiliza tras el rollback")
	assert.Equal(t, StateCommitted, wf.State())
	assert.Nil(t, wf.LastError())
}

type beginFailRunner struct{}

func (beginFailRunner) RunSale(context.Context, func(repository.TransactionRepository, repository.StockMovementRepository) error) error {
	return errBoom
}

func TestCommit_BeginFailureIsReferenceStep(t *testing.T) {
	wf := NewWorkflow(beginFailRunner{}, time.UTC, nil)
	c := scenarioCart(t)

	_, err := wf.Commit(context.Background(), scenarioInput(c))
	var se *StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StateReservingReference, se.Step)
	assert.ErrorIs(t, err, ErrReferenceGeneration)
	assert.Equal(t, StateFailed, wf.State())
	assert.Equal(t, 2, c.Len())
}
