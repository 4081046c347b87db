package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// TransactionFilter filtros del listado de ventas.
type TransactionFilter struct {
	ListFilter
	CustomerID int64 // 0 = todos
}

// TransactionRepository define el puerto de persistencia para ventas (cabecera + líneas).
type TransactionRepository interface {
	// LockNumbering serializa la asignación de números para el prefijo dado hasta el fin de la tx.
	LockNumbering(ctx context.Context, prefix string) error
	// ListNumbersWithPrefix devuelve los transaction_number que empiezan con "prefix-".
	ListNumbersWithPrefix(ctx context.Context, orgID int64, prefix string) ([]string, error)

	Create(ctx context.Context, t *entity.Transaction) error
	CreateItems(ctx context.Context, items []*entity.TransactionItem) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.Transaction, error)
	// LockForUpdate bloquea la cabecera hasta el fin de la tx. Sin fila no es error.
	LockForUpdate(ctx context.Context, orgID, id int64) error
	ListItems(ctx context.Context, transactionID int64) ([]*entity.TransactionItem, error)
	List(ctx context.Context, f TransactionFilter) ([]*entity.Transaction, int, error)

	UpdateReference(ctx context.Context, orgID, id int64, reference string) error
	UpdateStatus(ctx context.Context, orgID, id int64, status string) error
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int64) error
}
