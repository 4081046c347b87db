// Package stock calcula el stock disponible a partir del libro de movimientos (product_stocks).
// El nivel de stock nunca se persiste: se recalcula en cada lectura desde el historial completo.
package stock

import (
	"time"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// Movement entrada del libro relevante para el cálculo.
type Movement struct {
	Direction      string // entity.StockIn | entity.StockOut
	Quantity       int64
	ExpirationDate *time.Time
}

// Level resumen derivado de un producto.
type Level struct {
	OnHand      int64 `json:"on_hand"`
	ExpiredLots int   `json:"expired_lots"` // cantidad de lotes, no de unidades
}

// FromEntities adapta los movimientos persistidos.
func FromEntities(ms []*entity.StockMovement) []Movement {
	out := make([]Movement, 0, len(ms))
	for _, m := range ms {
		if m == nil {
			continue
		}
		out = append(out, Movement{Direction: m.Type, Quantity: m.Quantity, ExpirationDate: m.ExpirationDate})
	}
	return out
}

// ComputeOnHand suma las entradas y resta las salidas de los movimientos no vencidos a la fecha asOf.
// La comparación de vencimiento es solo por fecha. El resultado puede ser negativo y se devuelve tal cual.
func ComputeOnHand(movements []Movement, asOf time.Time) int64 {
	today := dateKey(asOf)
	var onHand int64
	for _, m := range movements {
		if m.ExpirationDate != nil && dateKey(*m.ExpirationDate) < today {
			continue
		}
		switch m.Direction {
		case entity.StockIn:
			onHand += m.Quantity
		case entity.StockOut:
			onHand -= m.Quantity
		}
	}
	return onHand
}

// CountExpiredLots cuenta los movimientos cuyo vencimiento es anterior a asOf.
func CountExpiredLots(movements []Movement, asOf time.Time) int {
	today := dateKey(asOf)
	n := 0
	for _, m := range movements {
		if m.ExpirationDate != nil && dateKey(*m.ExpirationDate) < today {
			n++
		}
	}
	return n
}

// Summarize calcula OnHand y ExpiredLots en una sola llamada.
func Summarize(movements []Movement, asOf time.Time) Level {
	return Level{
		OnHand:      ComputeOnHand(movements, asOf),
		ExpiredLots: CountExpiredLots(movements, asOf),
	}
}

// dateKey fecha civil como entero comparable (YYYYMMDD), en la zona del propio valor.
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
