package sales

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-pos/internal/domain/cart"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/reference"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
	"github.com/jhoicas/sucursales-pos/pkg/logger"
)

// State estado del flujo de confirmación de una venta.
type State string

const (
	StateIdle                     State = "idle"
	StateValidating               State = "validating"
	StateReservingReference       State = "reserving_reference"
	StatePersistingHeader         State = "persisting_header"
	StatePersistingItems          State = "persisting_items"
	StatePersistingStockMovements State = "persisting_stock_movements"
	StateCommitted                State = "committed"
	StateFailed                   State = "failed"
)

// CommitInput datos de la venta a confirmar.
type CommitInput struct {
	Cart            *cart.Cart
	OrgID           int64
	BranchID        int64
	CustomerID      int64
	PaymentType     string
	ReferenceNumber string // referencia de pago, opcional
	UserID          int64
}

// CommitResult venta confirmada.
type CommitResult struct {
	TransactionID     int64
	TransactionNumber string
	Total             decimal.Decimal
}

// Workflow confirma una venta: valida, reserva el número del día y persiste cabecera, líneas
// y salidas de stock en una sola transacción. Pertenece a una sesión de caja; Commit no admite
// ejecuciones en paralelo sobre el mismo Workflow.
type Workflow struct {
	tx  SaleTxRunner
	log *logger.Logger
	loc *time.Location
	now func() time.Time

	mu      sync.Mutex
	state   State
	lastErr error
}

// NewWorkflow construye el flujo en estado Idle. loc define el día del número de transacción.
func NewWorkflow(tx SaleTxRunner, loc *time.Location, log *logger.Logger) *Workflow {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Workflow{tx: tx, log: log.Named("sales"), loc: loc, now: time.Now, state: StateIdle}
}

// State estado actual.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastError error de la última ejecución (nil si terminó bien).
func (w *Workflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Workflow) setState(s State) {
	w.state = s
}

// Commit ejecuta el flujo completo. Con éxito vacía el carrito; ante cualquier error lo deja intacto.
func (w *Workflow) Commit(ctx context.Context, in CommitInput) (*CommitResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastErr = nil
	w.setState(StateValidating)
	if err := validate(in); err != nil {
		w.setState(StateIdle)
		w.lastErr = err
		w.log.Warn().Err(err).Int64("branch_id", in.BranchID).Msg("venta rechazada en validación")
		return nil, err
	}

	lines := in.Cart.Lines()
	total := in.Cart.Total()
	now := w.now().In(w.loc)

	var (
		number string
		txID   int64
	)
	w.setState(StateReservingReference)
	err := w.tx.RunSale(ctx, func(txRepo repository.TransactionRepository, movRepo repository.StockMovementRepository) error {
		prefix := reference.Prefix(now)
		if err := txRepo.LockNumbering(ctx, prefix); err != nil {
			return w.fail(err)
		}
		existing, err := txRepo.ListNumbersWithPrefix(ctx, in.OrgID, prefix)
		if err != nil {
			return w.fail(err)
		}
		number = reference.Next(existing, now)

		w.setState(StatePersistingHeader)
		t := &entity.Transaction{
			OrgID:             in.OrgID,
			BranchID:          in.BranchID,
			CustomerID:        in.CustomerID,
			TransactionNumber: number,
			ReferenceNumber:   strings.TrimSpace(in.ReferenceNumber),
			PaymentType:       strings.TrimSpace(in.PaymentType),
			TotalAmount:       total,
			Status:            entity.TransactionCompleted,
			CreatedAt:         now,
		}
		if in.UserID > 0 {
			uid := in.UserID
			t.CreatedBy = &uid
		}
		if err := txRepo.Create(ctx, t); err != nil {
			return w.fail(err)
		}
		txID = t.ID

		w.setState(StatePersistingItems)
		if err := txRepo.CreateItems(ctx, buildItems(t.ID, lines)); err != nil {
			return w.fail(err)
		}

		w.setState(StatePersistingStockMovements)
		for _, l := range lines {
			if l.ItemType != entity.ItemTypeProduct {
				continue
			}
			tid := t.ID
			mov := &entity.StockMovement{
				OrgID:           in.OrgID,
				BranchID:        in.BranchID,
				ProductID:       l.ItemID,
				TransactionID:   &tid,
				Type:            entity.StockOut,
				Quantity:        l.Quantity,
				Remarks:         "Venta " + number,
				TransactionDate: now,
				CreatedAt:       now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return w.fail(err)
			}
		}
		return nil
	})
	if err != nil {
		var se *StepError
		if !errors.As(err, &se) {
			// begin/commit de la tx
			se = &StepError{Step: w.state, Err: stepSentinel(w.state), Cause: err}
		}
		w.setState(StateFailed)
		w.lastErr = se
		w.log.Error().Err(se.Cause).
			Str("step", string(se.Step)).
			Str("transaction_number", number).
			Int64("transaction_id", txID).
			Bool("rolled_back", true).
			Msg("falló la confirmación de la venta; se revirtieron los pasos anteriores")
		return nil, se
	}

	in.Cart.Clear()
	w.setState(StateCommitted)
	w.log.Info().
		Int64("transaction_id", txID).
		Str("transaction_number", number).
		Str("total", total.StringFixed(2)).
		Int("lines", len(lines)).
		Msg("venta confirmada")
	return &CommitResult{TransactionID: txID, TransactionNumber: number, Total: total}, nil
}

func (w *Workflow) fail(cause error) error {
	return &StepError{Step: w.state, Err: stepSentinel(w.state), Cause: cause}
}

func validate(in CommitInput) error {
	if in.Cart == nil || in.Cart.Len() == 0 {
		return ErrEmptyCart
	}
	if in.CustomerID <= 0 {
		return ErrMissingCustomer
	}
	if strings.TrimSpace(in.PaymentType) == "" {
		return ErrMissingPaymentType
	}
	if in.BranchID <= 0 {
		return ErrMissingBranch
	}
	return nil
}

func buildItems(transactionID int64, lines []cart.Line) []*entity.TransactionItem {
	items := make([]*entity.TransactionItem, 0, len(lines))
	for _, l := range lines {
		item := &entity.TransactionItem{
			TransactionID: transactionID,
			ItemType:      l.ItemType,
			Name:          l.Name,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
			Price:         l.UnitPrice,
			Total:         l.Subtotal,
		}
		id := l.ItemID
		if l.ItemType == entity.ItemTypeProduct {
			item.ProductID = &id
		} else {
			item.ServiceID = &id
		}
		items = append(items, item)
	}
	return items
}
