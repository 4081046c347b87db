package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "70.00", formatMoney(decimal.NewFromInt(70)))
	assert.Equal(t, "1,234,567.50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1,000.00", formatMoney(decimal.NewFromInt(-1000)))
}

func TestGenerateReceipt_ProducesPDF(t *testing.T) {
	productID := int64(5)
	tx := &entity.Transaction{
		ID:                1,
		TransactionNumber: "20240301-1",
		PaymentType:       "cash",
		TotalAmount:       decimal.NewFromInt(70),
		Status:            entity.TransactionCompleted,
		CreatedAt:         time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Customer:          &entity.Customer{Name: "Ana"},
	}
	items := []*entity.TransactionItem{
		{ItemType: entity.ItemTypeProduct, ProductID: &productID, Name: "Jabón", Unit: "pz", Quantity: 2,
			Price: decimal.NewFromInt(10), Total: decimal.NewFromInt(20)},
		{ItemType: entity.ItemTypeService, Name: "Consulta", Quantity: 1,
			Price: decimal.NewFromInt(50), Total: decimal.NewFromInt(50)},
	}

	out, err := NewMarotoReceiptGenerator().GenerateReceipt(&entity.Branch{Name: "Centro"}, tx, items)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceipt_RequiresTransaction(t *testing.T) {
	_, err := NewMarotoReceiptGenerator().GenerateReceipt(&entity.Branch{}, nil, nil)
	assert.Error(t, err)
}
