package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestBuildCategoryTree(t *testing.T) {
	list := []*entity.ServiceCategory{
		{ID: 1, Name: "Laboratorio"},
		{ID: 2, Name: "Consultas"},
		{ID: 3, Name: "Pediatría", ParentID: ptr(int64(2))},
		{ID: 4, Name: "General", ParentID: ptr(int64(2))},
		{ID: 5, Name: "Huérfana", ParentID: ptr(int64(99))},
		{ID: 6, Name: "Neonatos", ParentID: ptr(int64(3))},
	}
	tree := BuildCategoryTree(list)

	require.Len(t, tree, 3)
	assert.Equal(t, "Consultas", tree[0].Name)
	assert.Equal(t, "Huérfana", tree[1].Name)
	assert.Equal(t, "Laboratorio", tree[2].Name)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "General", tree[0].Children[0].Name)
	assert.Equal(t, "Pediatría", tree[0].Children[1].Name)
	require.Len(t, tree[0].Children[1].Children, 1)
	assert.Equal(t, "Neonatos", tree[0].Children[1].Children[0].Name)
	assert.NotNil(t, tree[2].Children)
}

func TestUpdateCategory_RejectsCycle(t *testing.T) {
	cats := &memCategories{list: []*entity.ServiceCategory{
		{ID: 1, Name: "Consultas"},
		{ID: 2, Name: "Pediatría", ParentID: ptr(int64(1))},
	}}
	uc := NewServiceUseCase(nil, cats)

	_, err := uc.UpdateCategory(context.Background(), 1, 1, dto.CategoryRequest{Name: "Consultas", ParentID: ptr(int64(2))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateCategory(context.Background(), 1, 1, dto.CategoryRequest{Name: "Consultas", ParentID: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateCategory(context.Background(), 1, dto.CategoryRequest{Name: "X", ParentID: ptr(int64(77))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_DerivesStock(t *testing.T) {
	past := time.Now().AddDate(0, 0, -3)
	products := &memProducts{list: []*entity.Product{
		{ID: 1, Name: "Vitamina C", ReorderPoint: 5, IsActive: true, SellingPrice: decimal.NewFromInt(10)},
		{ID: 2, Name: "Jarabe", ReorderPoint: 2, IsActive: true},
	}}
	movs := &memMovements{list: []*entity.StockMovement{
		{ID: 1, ProductID: 1, BranchID: 3, Type: entity.StockIn, Quantity: 10},
		{ID: 2, ProductID: 1, BranchID: 3, Type: entity.StockOut, Quantity: 2},
		{ID: 3, ProductID: 1, BranchID: 3, Type: entity.StockIn, Quantity: 50, ExpirationDate: &past},
		{ID: 4, ProductID: 2, BranchID: 3, Type: entity.StockIn, Quantity: 1},
		{ID: 5, ProductID: 2, BranchID: 8, Type: entity.StockIn, Quantity: 100},
	}}
	uc := NewProductUseCase(products, movs, time.Local)

	out, err := uc.List(context.Background(), 1, dto.ListQuery{BranchID: 3})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(8), out.Items[0].StockQty)
	assert.Equal(t, 1, out.Items[0].ExpiredLots)
	assert.False(t, out.Items[0].LowStock)
	assert.Equal(t, int64(1), out.Items[1].StockQty)
	assert.True(t, out.Items[1].LowStock)

	low, err := uc.LowStock(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Jarabe", low[0].Name)
}

func TestProductUpdate_ReturnsStockOfCallerBranch(t *testing.T) {
	products := &memProducts{list: []*entity.Product{{ID: 2, Name: "Jarabe", IsActive: true}}}
	movs := &memMovements{list: []*entity.StockMovement{
		{ID: 1, ProductID: 2, BranchID: 3, Type: entity.StockIn, Quantity: 1},
		{ID: 2, ProductID: 2, BranchID: 8, Type: entity.StockIn, Quantity: 100},
	}}
	uc := NewProductUseCase(products, movs, time.UTC)

	out, err := uc.Update(context.Background(), 1, 3, 2, dto.UpdateProductRequest{Name: ptr("Jarabe infantil")})
	require.NoError(t, err)
	assert.Equal(t, "Jarabe infantil", out.Name)
	assert.Equal(t, int64(1), out.StockQty)

	out, err = uc.Update(context.Background(), 1, 0, 2, dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(101), out.StockQty, "sin sucursal: stock de toda la organización")
}

func TestStockIn(t *testing.T) {
	products := &memProducts{list: []*entity.Product{{ID: 1, Name: "Gasa", IsActive: true}}}
	movs := &memMovements{}
	uc := NewStockUseCase(movs, products, time.UTC)

	out, err := uc.StockIn(context.Background(), 1, dto.StockInRequest{
		ProductID: 1, BranchID: 3, Quantity: 12, ExpirationDate: "2099-12-31", TransactionDate: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockIn, out.Type)
	assert.Equal(t, "2099-12-31", out.ExpirationDate)
	assert.Equal(t, "2024-03-01", out.TransactionDate)
	assert.Equal(t, "Gasa", out.ProductName)
	assert.False(t, out.Expired)
	require.Len(t, movs.list, 1)

	_, err = uc.StockIn(context.Background(), 1, dto.StockInRequest{ProductID: 1, BranchID: 3, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.StockIn(context.Background(), 1, dto.StockInRequest{ProductID: 9, BranchID: 3, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.StockIn(context.Background(), 1, dto.StockInRequest{ProductID: 1, BranchID: 3, Quantity: 1, ExpirationDate: "31/12/2099"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, uc.Delete(context.Background(), 1, 99), domain.ErrNotFound)
	require.NoError(t, uc.Delete(context.Background(), 1, out.ID))
	assert.Empty(t, movs.list)
}

func TestBookingCreate_WithChildren(t *testing.T) {
	repo := newMemBookings()
	customers := &memCustomers{list: []*entity.Customer{{ID: 7, Name: "Ana"}}}
	uc := NewBookingUseCase(bookingRunner{repo: repo}, repo, customers)

	out, err := uc.Create(context.Background(), 1, "recepcion@clinica.com", dto.BookingRequest{
		BranchID: 3, CustomerID: 7, ScheduleDate: "2024-03-08", TimeStart: "09:30",
		AttendantIDs: []int64{4, 4, 5}, ServiceIDs: []int64{10},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingPending, out.Status)
	assert.Equal(t, "Ana", out.CustomerName)
	assert.Equal(t, "2024-03-08", out.ScheduleDate)
	assert.Equal(t, "09:30", out.TimeStart)
	assert.Equal(t, []int64{4, 5}, repo.attendants[out.ID])
	assert.Equal(t, []int64{10}, repo.services[out.ID])

	st, err := uc.UpdateStatus(context.Background(), 1, 0, out.ID, dto.BookingStatusRequest{Status: entity.BookingDone})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingDone, st.Status)

	_, err = uc.UpdateStatus(context.Background(), 1, 0, out.ID, dto.BookingStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBooking_OtherBranchIsNotFound(t *testing.T) {
	repo := newMemBookings()
	customers := &memCustomers{list: []*entity.Customer{{ID: 7, Name: "Ana", BranchID: 3}}}
	uc := NewBookingUseCase(bookingRunner{repo: repo}, repo, customers)
	ctx := context.Background()

	out, err := uc.Create(ctx, 1, "x", dto.BookingRequest{
		BranchID: 3, CustomerID: 7, ScheduleDate: "2024-03-08", TimeStart: "09:30",
	})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, 1, 4, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, 1, 4, out.ID, dto.BookingRequest{
		BranchID: 4, CustomerID: 7, ScheduleDate: "2024-03-09", TimeStart: "10:00",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.UpdateStatus(ctx, 1, 4, out.ID, dto.BookingStatusRequest{Status: entity.BookingDone})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 1, 4, out.ID), domain.ErrNotFound)
	assert.Equal(t, entity.BookingPending, repo.list[0].Status)

	got, err := uc.GetByID(ctx, 1, 3, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestCustomer_OtherBranchIsNotFound(t *testing.T) {
	customers := &memCustomers{list: []*entity.Customer{{ID: 7, Name: "Ana", BranchID: 3}}}
	uc := NewCustomerUseCase(customers)
	ctx := context.Background()

	_, err := uc.GetByID(ctx, 1, 4, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, 1, 4, 7, dto.CustomerRequest{Name: "Otra", BranchID: 4})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 1, 4, 7), domain.ErrNotFound)
	assert.Equal(t, "Ana", customers.list[0].Name)

	got, err := uc.GetByID(ctx, 1, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	got, err = uc.GetByID(ctx, 1, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestBookingCreate_RollsBackOnChildFailure(t *testing.T) {
	repo := newMemBookings()
	repo.failOn = "services"
	customers := &memCustomers{list: []*entity.Customer{{ID: 7, Name: "Ana"}}}
	uc := NewBookingUseCase(bookingRunner{repo: repo}, repo, customers)

	_, err := uc.Create(context.Background(), 1, "x", dto.BookingRequest{
		BranchID: 3, CustomerID: 7, ScheduleDate: "2024-03-08", TimeStart: "09:30", ServiceIDs: []int64{10},
	})
	assert.Error(t, err)
	assert.Empty(t, repo.list)
}

func TestBookingCreate_Validation(t *testing.T) {
	repo := newMemBookings()
	uc := NewBookingUseCase(bookingRunner{repo: repo}, repo, &memCustomers{})

	_, err := uc.Create(context.Background(), 1, "x", dto.BookingRequest{BranchID: 3, CustomerID: 7, ScheduleDate: "2024-03-08", TimeStart: "09:30"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(context.Background(), 1, "x", dto.BookingRequest{BranchID: 3, CustomerID: 7, ScheduleDate: "08-03-2024", TimeStart: "09:30"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserDelete_Self(t *testing.T) {
	uc := NewUserUseCase(nil, nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), 1, 5, 5), domain.ErrForbidden)
}

func TestHouseholdSearch_EmptyQuery(t *testing.T) {
	uc := NewHouseholdUseCase(nil)
	out, err := uc.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
