package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

func testCatalog() *Catalog {
	return NewCatalog(
		[]Product{
			{ID: 1, Name: "Amoxicilina 500mg", Unit: "caja", SellingPrice: decimal.NewFromInt(10)},
			{ID: 2, Name: "Gasa", Unit: "pieza", SellingPrice: decimal.RequireFromString("2.50")},
		},
		[]Service{
			{ID: 1, Name: "Consulta general", BasePrice: decimal.NewFromInt(50)},
		},
	)
}

func TestAddProduct_DuplicateGuard(t *testing.T) {
	c := New(testCatalog())
	assert.True(t, c.AddProduct(1, 1))
	assert.False(t, c.AddProduct(1, 1))

	require.Equal(t, 1, c.Len())
	line := c.Lines()[0]
	assert.True(t, c.Total().Equal(line.Subtotal))
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(10)))
}

func TestAddProduct_SameIDDifferentTypeIsAllowed(t *testing.T) {
	c := New(testCatalog())
	assert.True(t, c.AddProduct(1, 1))
	assert.True(t, c.AddService(1))
	assert.Equal(t, 2, c.Len())
}

func TestAddProduct_UnknownIsNoop(t *testing.T) {
	c := New(testCatalog())
	assert.False(t, c.AddProduct(99, 1))
	assert.False(t, c.AddService(99))
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestAddProduct_QuantityBelowOneDefaultsToOne(t *testing.T) {
	c := New(testCatalog())
	require.True(t, c.AddProduct(2, 0))
	assert.Equal(t, int64(1), c.Lines()[0].Quantity)
}

func TestUpdateQuantity_RecomputesSubtotal(t *testing.T) {
	c := New(testCatalog())
	require.True(t, c.AddProduct(1, 2))
	require.NoError(t, c.UpdateQuantity(0, 5))

	line := c.Lines()[0]
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(50)))
}

func TestUpdateQuantity_Errors(t *testing.T) {
	c := New(testCatalog())
	require.True(t, c.AddProduct(1, 2))

	assert.ErrorIs(t, c.UpdateQuantity(0, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.UpdateQuantity(3, 1), ErrLineNotFound)
	assert.Equal(t, int64(2), c.Lines()[0].Quantity)
}

func TestRemoveLine_KeepsOrder(t *testing.T) {
	c := New(testCatalog())
	c.AddProduct(1, 1)
	c.AddProduct(2, 4)
	c.AddService(1)

	require.NoError(t, c.RemoveLine(0))
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(2), lines[0].ItemID)
	assert.Equal(t, entity.ItemTypeService, lines[1].ItemType)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(60)))

	assert.ErrorIs(t, c.RemoveLine(5), ErrLineNotFound)
	assert.ErrorIs(t, c.RemoveLine(-1), ErrLineNotFound)
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New(testCatalog())
	c.AddProduct(1, 1)
	lines := c.Lines()
	lines[0].Quantity = 100
	assert.Equal(t, int64(1), c.Lines()[0].Quantity)
}

func TestClear(t *testing.T) {
	c := New(testCatalog())
	c.AddProduct(1, 1)
	c.AddService(1)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
	assert.True(t, c.AddProduct(1, 1), "tras vaciar se puede volver a agregar")
}

func TestCatalog_ListsSortedByName(t *testing.T) {
	c := testCatalog()
	ps := c.Products()
	require.Len(t, ps, 2)
	assert.Equal(t, "Amoxicilina 500mg", ps[0].Name)
	assert.Equal(t, "Gasa", ps[1].Name)
	assert.Len(t, c.Services(), 1)

	var nilCatalog *Catalog
	assert.Nil(t, nilCatalog.Products())
}
