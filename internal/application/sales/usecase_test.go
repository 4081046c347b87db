package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

type ucFixture struct {
	uc       *TransactionUseCase
	store    *memStore
	receipts *fakeReceipts
}

func newUCFixture() ucFixture {
	store := &memStore{nextID: 1000}
	// stock inicial: 5 del producto 1; el 2 sin stock; el 3 es insumo interno
	store.movements = []*entity.StockMovement{
		{ID: 1, ProductID: 1, Type: entity.StockIn, Quantity: 5},
		{ID: 2, ProductID: 3, Type: entity.StockIn, Quantity: 9},
	}
	products := &fakeProductRepo{products: []*entity.Product{
		{ID: 1, Name: "Vitamina C", Unit: "frasco", SellingPrice: dec(15), Type: entity.ProductTypeForSale, IsActive: true},
		{ID: 2, Name: "Jarabe", Unit: "frasco", SellingPrice: dec(20), Type: entity.ProductTypeForSale, IsActive: true},
		{ID: 3, Name: "Guantes", Unit: "caja", SellingPrice: dec(3), Type: entity.ProductTypeInternal, IsActive: true},
	}}
	services := &fakeServiceRepo{services: []*entity.Service{
		{ID: 10, Name: "Consulta", BasePrice: dec(40), IsActive: true},
	}}
	customers := &fakeCustomerRepo{customers: []*entity.Customer{{ID: 7, Name: "Ana"}}}
	receipts := &fakeReceipts{}
	uc := NewTransactionUseCase(
		&fakeRunner{store: store}, &fakeTxRepo{s: store}, products, services, &fakeMovRepo{s: store},
		customers, fakeBranchRepo{}, receipts, time.UTC, nil,
	)
	return ucFixture{uc: uc, store: store, receipts: receipts}
}

func TestCatalog_OnlySellableInStock(t *testing.T) {
	f := newUCFixture()
	cat, err := f.uc.Catalog(context.Background(), 1, 3)
	require.NoError(t, err)

	_, ok := cat.Product(1)
	assert.True(t, ok)
	_, ok = cat.Product(2)
	assert.False(t, ok, "sin stock")
	_, ok = cat.Product(3)
	assert.False(t, ok, "insumo interno")
	_, ok = cat.Service(10)
	assert.True(t, ok)
}

func TestCheckout(t *testing.T) {
	f := newUCFixture()
	res, err := f.uc.Checkout(context.Background(), 1, 5, dto.CreateTransactionRequest{
		BranchID:    3,
		CustomerID:  7,
		PaymentType: "Cash",
		Items: []dto.TransactionLineRequest{
			{ItemType: "product", ItemID: 1, Quantity: 2},
			{ItemType: "service", ItemID: 10},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(dec(70)))
	assert.Equal(t, string(StateCommitted), res.State)
	assert.NotEmpty(t, res.TransactionNumber)
}

func TestCheckout_UnavailableItem(t *testing.T) {
	f := newUCFixture()
	_, err := f.uc.Checkout(context.Background(), 1, 5, dto.CreateTransactionRequest{
		BranchID: 3, CustomerID: 7, PaymentType: "Cash",
		Items: []dto.TransactionLineRequest{{ItemType: "product", ItemID: 2, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrItemUnavailable)

	_, err = f.uc.Checkout(context.Background(), 1, 5, dto.CreateTransactionRequest{
		BranchID: 3, CustomerID: 7, PaymentType: "Cash",
		Items: []dto.TransactionLineRequest{
			{ItemType: "service", ItemID: 10},
			{ItemType: "service", ItemID: 10},
		},
	})
	assert.ErrorIs(t, err, ErrItemUnavailable, "líneas repetidas se rechazan")
	assert.Empty(t, f.store.transactions)
}

func TestCheckout_UnknownCustomer(t *testing.T) {
	f := newUCFixture()
	_, err := f.uc.Checkout(context.Background(), 1, 5, dto.CreateTransactionRequest{
		BranchID: 3, CustomerID: 99, PaymentType: "Cash",
		Items: []dto.TransactionLineRequest{{ItemType: "service", ItemID: 10}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newUCFixture()
	_, err := f.uc.Checkout(context.Background(), 1, 5, dto.CreateTransactionRequest{
		BranchID: 3, CustomerID: 7, PaymentType: "Cash",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func checkoutOne(t *testing.T, f ucFixture) *dto.CheckoutResponse {
	t.Helper()
	res, err := f.uc.Checkout(context.Background(), 1, 5, dto.CreateTransactionRequest{
		BranchID: 3, CustomerID: 7, PaymentType: "Cash",
		Items: []dto.TransactionLineRequest{
			{ItemType: "product", ItemID: 1, Quantity: 3},
			{ItemType: "service", ItemID: 10},
		},
	})
	require.NoError(t, err)
	return res
}

func TestCorrectItemQuantity_ReturnsStock(t *testing.T) {
	f := newUCFixture()
	res := checkoutOne(t, f)

	detail, err := f.uc.Get(context.Background(), 1, 0, res.TransactionID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	productItem := detail.Items[0]

	out, err := f.uc.CorrectItemQuantity(context.Background(), 1, 0, res.TransactionID, productItem.ID, dto.CorrectItemRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionReturned, out.Status)
	assert.Equal(t, int64(1), out.Items[0].Quantity)
	assert.True(t, out.TotalAmount.Equal(res.Total), "el total de la cabecera no cambia")

	last := f.store.movements[len(f.store.movements)-1]
	assert.Equal(t, entity.StockIn, last.Type)
	assert.Equal(t, int64(2), last.Quantity)
	assert.Equal(t, int64(1), last.ProductID)
}

func TestCorrectItemQuantity_Invalid(t *testing.T) {
	f := newUCFixture()
	res := checkoutOne(t, f)
	detail, err := f.uc.Get(context.Background(), 1, 0, res.TransactionID)
	require.NoError(t, err)

	_, err = f.uc.CorrectItemQuantity(context.Background(), 1, 0, res.TransactionID, detail.Items[0].ID, dto.CorrectItemRequest{Quantity: 4})
	assert.ErrorIs(t, err, ErrInvalidReturn)

	_, err = f.uc.CorrectItemQuantity(context.Background(), 1, 0, res.TransactionID, 424242, dto.CorrectItemRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CorrectItemQuantity(context.Background(), 1, 0, 424242, 1, dto.CorrectItemRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReference(t *testing.T) {
	f := newUCFixture()
	res := checkoutOne(t, f)

	out, err := f.uc.UpdateReference(context.Background(), 1, 0, res.TransactionID, dto.UpdateReferenceRequest{ReferenceNumber: " GC-889 "})
	require.NoError(t, err)
	assert.Equal(t, "GC-889", out.ReferenceNumber)
}

func TestReceipt(t *testing.T) {
	f := newUCFixture()
	res := checkoutOne(t, f)

	pdf, name, err := f.uc.Receipt(context.Background(), 1, 0, res.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "comprobante-"+res.TransactionNumber+".pdf", name)
	require.NotNil(t, f.receipts.got.Customer)
	assert.Equal(t, "Ana", f.receipts.got.Customer.Name)
}

func TestList_ByCustomer(t *testing.T) {
	f := newUCFixture()
	checkoutOne(t, f)

	out, err := f.uc.List(context.Background(), 1, dto.ListQuery{}, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)

	out, err = f.uc.List(context.Background(), 1, dto.ListQuery{}, 8)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestByID_OtherBranchIsNotFound(t *testing.T) {
	f := newUCFixture()
	res := checkoutOne(t, f)
	ctx := context.Background()

	_, err := f.uc.Get(ctx, 1, 4, res.TransactionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.UpdateReference(ctx, 1, 4, res.TransactionID, dto.UpdateReferenceRequest{ReferenceNumber: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.transactions[0].ReferenceNumber)

	_, _, err = f.uc.Receipt(ctx, 1, 4, res.TransactionID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, f.receipts.got)

	detail, err := f.uc.Get(ctx, 1, 3, res.TransactionID)
	require.NoError(t, err)
	movements := len(f.store.movements)
	_, err = f.uc.CorrectItemQuantity(ctx, 1, 4, res.TransactionID, detail.Items[0].ID, dto.CorrectItemRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, f.store.movements, movements)
}

func TestCorrectItemQuantity_LocksBeforeReadingItems(t *testing.T) {
	f := newUCFixture()
	res := checkoutOne(t, f)
	detail, err := f.uc.Get(context.Background(), 1, 3, res.TransactionID)
	require.NoError(t, err)
	f.store.trace = nil

	_, err = f.uc.CorrectItemQuantity(context.Background(), 1, 3, res.TransactionID, detail.Items[0].ID, dto.CorrectItemRequest{Quantity: 1})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(f.store.trace), 2)
	id := fmt.Sprint(res.TransactionID)
	assert.Equal(t, []string{"lock:" + id, "items:" + id}, f.store.trace[:2])

	// la misma corrección repetida ve la cantidad ya corregida y no genera otro movimiento
	movements := len(f.store.movements)
	_, err = f.uc.CorrectItemQuantity(context.Background(), 1, 3, res.TransactionID, detail.Items[0].ID, dto.CorrectItemRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, f.store.movements, movements)
}

func TestSalesListener_NotifiedOnCheckoutAndReturn(t *testing.T) {
	f := newUCFixture()
	l := &fakeListener{}
	f.uc.WithListener(l)

	res := checkoutOne(t, f)
	assert.Equal(t, [][2]int64{{1, 3}}, l.calls)

	detail, err := f.uc.Get(context.Background(), 1, 0, res.TransactionID)
	require.NoError(t, err)
	_, err = f.uc.CorrectItemQuantity(context.Background(), 1, 0, res.TransactionID, detail.Items[0].ID, dto.CorrectItemRequest{Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, [][2]int64{{1, 3}, {1, 3}}, l.calls)

	_, err = f.uc.CorrectItemQuantity(context.Background(), 1, 0, res.TransactionID, detail.Items[0].ID, dto.CorrectItemRequest{Quantity: 9})
	assert.ErrorIs(t, err, ErrInvalidReturn)
	assert.Len(t, l.calls, 2, "una devolución rechazada no avisa")
}
