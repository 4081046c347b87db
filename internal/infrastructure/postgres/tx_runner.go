package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sucursales-pos/internal/application/sales"
	"github.com/jhoicas/sucursales-pos/internal/application/usecase"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var (
	_ sales.SaleTxRunner      = (*TxRunner)(nil)
	_ usecase.BookingTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, ejecuta fn y hace Commit; cualquier error deja la tx en Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale numeración, cabecera, ítems y movimientos de stock de una venta en la misma tx.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTransactionRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunBooking cabecera de la reserva más asistentes y servicios.
func (r *TxRunner) RunBooking(ctx context.Context, fn func(repo repository.BookingRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewBookingRepository(tx))
	})
}
