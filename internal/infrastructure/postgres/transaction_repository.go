package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ventas y sus ítems. Las escrituras de una venta corren sobre la misma tx.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `t.id, t.org_id, t.branch_id, t.customer_id, t.transaction_number, t.reference_number,
	t.payment_type, t.total_amount, t.status, t.created_by, t.created_at, COALESCE(c.name, '')`

const transactionFrom = ` FROM transactions t LEFT JOIN customers c ON c.id = t.customer_id`

func scanTransaction(row rowScanner) (*entity.Transaction, error) {
	var t entity.Transaction
	var customerName string
	if err := row.Scan(&t.ID, &t.OrgID, &t.BranchID, &t.CustomerID, &t.TransactionNumber, &t.ReferenceNumber,
		&t.PaymentType, &t.TotalAmount, &t.Status, &t.CreatedBy, &t.CreatedAt, &customerName); err != nil {
		return nil, err
	}
	t.Customer = &entity.Customer{ID: t.CustomerID, Name: customerName}
	return &t, nil
}

// LockNumbering serializa la numeración del día hasta el fin de la transacción en curso.
func (r *TransactionRepo) LockNumbering(ctx context.Context, prefix string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('transactions:' || $1::text))`, prefix); err != nil {
		return fmt.Errorf("lock numbering: %w", err)
	}
	return nil
}

// LockForUpdate bloquea la fila de la venta hasta el fin de la transacción en curso.
func (r *TransactionRepo) LockForUpdate(ctx context.Context, orgID, id int64) error {
	var got int64
	err := r.q.QueryRow(ctx, `SELECT id FROM transactions WHERE org_id = $1 AND id = $2 FOR UPDATE`, orgID, id).Scan(&got)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lock transaction: %w", err)
	}
	return nil
}

// ListNumbersWithPrefix números de venta de la organización que empiezan con "prefix-".
func (r *TransactionRepo) ListNumbersWithPrefix(ctx context.Context, orgID int64, prefix string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT transaction_number FROM transactions
		WHERE org_id = $1 AND transaction_number LIKE $2`, orgID, prefix+"-%")
	if err != nil {
		return nil, fmt.Errorf("list transaction numbers: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan transaction number: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Create inserta la cabecera. 23505 sobre transaction_number -> ErrDuplicate.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (org_id, branch_id, customer_id, transaction_number, reference_number, payment_type,
			total_amount, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, t.OrgID, t.BranchID, t.CustomerID, t.TransactionNumber, t.ReferenceNumber,
		t.PaymentType, t.TotalAmount, t.Status, t.CreatedBy, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", writeErr(err))
	}
	return nil
}

// CreateItems inserta los ítems en lote y asigna sus IDs.
func (r *TransactionRepo) CreateItems(ctx context.Context, items []*entity.TransactionItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO transaction_items (transaction_id, item_type, product_id, service_id, name, unit, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, it.TransactionID, it.ItemType, it.ProductID, it.ServiceID, it.Name, it.Unit, it.Quantity, it.Price, it.Total)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i, it := range items {
		if err := br.QueryRow().Scan(&it.ID); err != nil {
			return fmt.Errorf("insert transaction item %d: %w", i, writeErr(err))
		}
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+transactionFrom+` WHERE t.org_id = $1 AND t.id = $2`, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) ListItems(ctx context.Context, transactionID int64) ([]*entity.TransactionItem, error) {
	rows, err := r.q.Query(ctx, `SELECT id, transaction_id, item_type, product_id, service_id, name, unit, quantity, price, total
		FROM transaction_items WHERE transaction_id = $1 ORDER BY id`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionItem
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.ID, &it.TransactionID, &it.ItemType, &it.ProductID, &it.ServiceID, &it.Name, &it.Unit,
			&it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List listado paginado, más recientes primero. Search busca en número de venta, referencia y cliente.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	where := ` WHERE t.org_id = $1 AND ($2::bigint = 0 OR t.branch_id = $2)
		AND ($3::text = '' OR t.transaction_number ILIKE $4 OR t.reference_number ILIKE $4 OR c.name ILIKE $4)
		AND ($5::bigint = 0 OR t.customer_id = $5)`
	args := []any{f.OrgID, f.BranchID, f.Search, likePattern(f.Search), f.CustomerID}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+transactionFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+transactionColumns+transactionFrom+where+` ORDER BY t.id DESC LIMIT $6 OFFSET $7`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func (r *TransactionRepo) UpdateReference(ctx context.Context, orgID, id int64, reference string) error {
	err := updateErr(r.q.Exec(ctx, `UPDATE transactions SET reference_number = $3 WHERE org_id = $1 AND id = $2`, orgID, id, reference))
	if err != nil {
		return fmt.Errorf("update transaction reference: %w", err)
	}
	return nil
}

func (r *TransactionRepo) UpdateStatus(ctx context.Context, orgID, id int64, status string) error {
	err := updateErr(r.q.Exec(ctx, `UPDATE transactions SET status = $3 WHERE org_id = $1 AND id = $2`, orgID, id, status))
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	return nil
}

// UpdateItemQuantity corrige la cantidad de un ítem y recalcula su total.
func (r *TransactionRepo) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int64) error {
	err := updateErr(r.q.Exec(ctx, `UPDATE transaction_items SET quantity = $2, total = price * $2 WHERE id = $1`, itemID, quantity))
	if err != nil {
		return fmt.Errorf("update transaction item: %w", err)
	}
	return nil
}
