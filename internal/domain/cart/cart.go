// Package cart modela el carrito en memoria de una venta en curso.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

var (
	ErrInvalidQuantity = errors.New("la cantidad debe ser al menos 1")
	ErrLineNotFound    = errors.New("línea de carrito inexistente")
)

// Line una línea pendiente. Subtotal = Quantity * UnitPrice.
type Line struct {
	ItemType  string          `json:"item_type"`
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Cart lista ordenada de líneas; nunca contiene dos líneas con el mismo (ItemType, ItemID).
// No es seguro para uso concurrente: pertenece a una sola venta.
type Cart struct {
	catalog *Catalog
	lines   []Line
}

// New crea un carrito vacío sobre el catálogo dado.
func New(catalog *Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// AddProduct agrega un producto del catálogo. qty < 1 se toma como 1.
// Devuelve false (sin cambios) si el producto no existe o ya está en el carrito.
func (c *Cart) AddProduct(productID int64, qty int64) bool {
	p, ok := c.catalog.Product(productID)
	if !ok || c.indexOf(entity.ItemTypeProduct, productID) >= 0 {
		return false
	}
	if qty < 1 {
		qty = 1
	}
	c.lines = append(c.lines, Line{
		ItemType:  entity.ItemTypeProduct,
		ItemID:    p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		Quantity:  qty,
		UnitPrice: p.SellingPrice,
		Subtotal:  p.SellingPrice.Mul(decimal.NewFromInt(qty)),
	})
	return true
}

// AddService agrega un servicio con cantidad 1. Mismas reglas que AddProduct.
func (c *Cart) AddService(serviceID int64) bool {
	s, ok := c.catalog.Service(serviceID)
	if !ok || c.indexOf(entity.ItemTypeService, serviceID) >= 0 {
		return false
	}
	c.lines = append(c.lines, Line{
		ItemType:  entity.ItemTypeService,
		ItemID:    s.ID,
		Name:      s.Name,
		Quantity:  1,
		UnitPrice: s.BasePrice,
		Subtotal:  s.BasePrice,
	})
	return true
}

// UpdateQuantity cambia la cantidad de la línea index y recalcula su subtotal.
func (c *Cart) UpdateQuantity(index int, qty int64) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}
	l := &c.lines[index]
	l.Quantity = qty
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(qty))
	return nil
}

// RemoveLine quita la línea index conservando el orden de las demás.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Lines devuelve una copia de las líneas.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// Total suma de los subtotales.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) indexOf(itemType string, id int64) int {
	for i, l := range c.lines {
		if l.ItemType == itemType && l.ItemID == id {
			return i
		}
	}
	return -1
}
