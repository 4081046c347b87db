package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary para una sucursal.
type DashboardSummaryDTO struct {
	BranchID int64 `json:"branch_id"`

	TodaySales        decimal.Decimal `json:"today_sales"`
	TodayTransactions int             `json:"today_transactions"`
	MonthlySales      decimal.Decimal `json:"monthly_sales"`
	CustomersCount    int             `json:"customers_count"`

	UpcomingBookings []BookingResponse `json:"upcoming_bookings"`
	LowStock         []LowStockDTO     `json:"low_stock"`

	DateLabel string `json:"date_label"` // ej: "2024-03-07"
}

// LowStockDTO producto en o por debajo de su punto de reorden.
type LowStockDTO struct {
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	StockQty     int64  `json:"stock_qty"`
	ReorderPoint int64  `json:"reorder_point"`
}
