package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/cart"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
	"github.com/jhoicas/sucursales-pos/internal/domain/stock"
	"github.com/jhoicas/sucursales-pos/pkg/logger"
)

// TransactionUseCase caja (confirmación de ventas) y consultas/correcciones de transacciones.
type TransactionUseCase struct {
	tx           SaleTxRunner
	txRepo       repository.TransactionRepository
	productRepo  repository.ProductRepository
	serviceRepo  repository.ServiceRepository
	movRepo      repository.StockMovementRepository
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	receipts     ReceiptGenerator
	listener     SalesListener
	loc          *time.Location
	log          *logger.Logger
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	tx SaleTxRunner,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	movRepo repository.StockMovementRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	receipts ReceiptGenerator,
	loc *time.Location,
	log *logger.Logger,
) *TransactionUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TransactionUseCase{
		tx:           tx,
		txRepo:       txRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		movRepo:      movRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		receipts:     receipts,
		loc:          loc,
		log:          log,
	}
}

// WithListener registra quien recibe aviso tras cada venta o devolución confirmada.
func (uc *TransactionUseCase) WithListener(l SalesListener) *TransactionUseCase {
	uc.listener = l
	return uc
}

func (uc *TransactionUseCase) salesChanged(ctx context.Context, orgID, branchID int64) {
	if uc.listener != nil {
		uc.listener.SalesChanged(ctx, orgID, branchID)
	}
}

// NewWorkflow flujo de confirmación nuevo, en Idle.
func (uc *TransactionUseCase) NewWorkflow() *Workflow {
	return NewWorkflow(uc.tx, uc.loc, uc.log)
}

// Catalog snapshot de caja para la sucursal: productos "for sale" activos con stock > 0
// y servicios activos.
func (uc *TransactionUseCase) Catalog(ctx context.Context, orgID, branchID int64) (*cart.Catalog, error) {
	products, err := uc.productRepo.ListActive(ctx, orgID, branchID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	movs, err := uc.movRepo.ListByProducts(ctx, orgID, branchID, ids)
	if err != nil {
		return nil, err
	}
	today := time.Now().In(uc.loc)
	sellable := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Type != entity.ProductTypeForSale {
			continue
		}
		if stock.ComputeOnHand(stock.FromEntities(movs[p.ID]), today) <= 0 {
			continue
		}
		sellable = append(sellable, p)
	}
	services, err := uc.serviceRepo.ListActive(ctx, orgID, branchID)
	if err != nil {
		return nil, err
	}
	return cart.CatalogFromEntities(sellable, services), nil
}

// Checkout arma el carrito desde la solicitud y ejecuta el flujo de confirmación.
func (uc *TransactionUseCase) Checkout(ctx context.Context, orgID, userID int64, in dto.CreateTransactionRequest) (*dto.CheckoutResponse, error) {
	if in.CustomerID > 0 {
		c, err := uc.customerRepo.GetByID(ctx, orgID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
	}

	catalog, err := uc.Catalog(ctx, orgID, in.BranchID)
	if err != nil {
		return nil, err
	}
	c := cart.New(catalog)
	for _, l := range in.Items {
		var ok bool
		switch l.ItemType {
		case entity.ItemTypeProduct:
			ok = c.AddProduct(l.ItemID, l.Quantity)
		case entity.ItemTypeService:
			ok = c.AddService(l.ItemID)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s %d", ErrItemUnavailable, l.ItemType, l.ItemID)
		}
	}

	wf := uc.NewWorkflow()
	res, err := wf.Commit(ctx, CommitInput{
		Cart:            c,
		OrgID:           orgID,
		BranchID:        in.BranchID,
		CustomerID:      in.CustomerID,
		PaymentType:     in.PaymentType,
		ReferenceNumber: in.ReferenceNumber,
		UserID:          userID,
	})
	if err != nil {
		return nil, err
	}
	uc.salesChanged(ctx, orgID, in.BranchID)
	return &dto.CheckoutResponse{
		TransactionID:     res.TransactionID,
		TransactionNumber: res.TransactionNumber,
		Total:             res.Total,
		State:             string(wf.State()),
	}, nil
}

// List listado paginado de ventas (más recientes primero).
func (uc *TransactionUseCase) List(ctx context.Context, orgID int64, q dto.ListQuery, customerID int64) (*dto.TransactionListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.txRepo.List(ctx, repository.TransactionFilter{
		ListFilter: repository.ListFilter{
			OrgID:    orgID,
			BranchID: q.BranchID,
			Search:   strings.TrimSpace(q.Search),
			Limit:    q.Limit,
			Offset:   q.Offset,
		},
		CustomerID: customerID,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransactionResponse(t, nil))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Get detalle de una venta con sus líneas. Una venta de otra sucursal que branchID es ErrNotFound
// (branchID 0 = todas).
func (uc *TransactionUseCase) Get(ctx context.Context, orgID, branchID, id int64) (*dto.TransactionResponse, error) {
	t, items, err := uc.load(ctx, uc.txRepo, orgID, branchID, id)
	if err != nil {
		return nil, err
	}
	out := toTransactionResponse(t, items)
	return &out, nil
}

// UpdateReference corrige el número de referencia de pago (único campo editable de la cabecera).
func (uc *TransactionUseCase) UpdateReference(ctx context.Context, orgID, branchID, id int64, in dto.UpdateReferenceRequest) (*dto.TransactionResponse, error) {
	if _, _, err := uc.load(ctx, uc.txRepo, orgID, branchID, id); err != nil {
		return nil, err
	}
	if err := uc.txRepo.UpdateReference(ctx, orgID, id, strings.TrimSpace(in.ReferenceNumber)); err != nil {
		return nil, err
	}
	return uc.Get(ctx, orgID, branchID, id)
}

// CorrectItemQuantity reduce la cantidad de una línea por devolución. Las unidades devueltas de
// productos vuelven al libro como movimiento "in" y la venta queda "returned". El total de la
// cabecera no se recalcula.
//
// La cabecera se bloquea antes de leer las líneas: dos correcciones simultáneas de la misma venta
// se aplican una tras otra y la segunda ve la cantidad ya corregida.
func (uc *TransactionUseCase) CorrectItemQuantity(ctx context.Context, orgID, branchID, transactionID, itemID int64, in dto.CorrectItemRequest) (*dto.TransactionResponse, error) {
	var saleBranch int64
	err := uc.tx.RunSale(ctx, func(txRepo repository.TransactionRepository, movRepo repository.StockMovementRepository) error {
		if err := txRepo.LockForUpdate(ctx, orgID, transactionID); err != nil {
			return err
		}
		t, items, err := uc.load(ctx, txRepo, orgID, branchID, transactionID)
		if err != nil {
			return err
		}
		saleBranch = t.BranchID
		var item *entity.TransactionItem
		for _, it := range items {
			if it.ID == itemID {
				item = it
				break
			}
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if in.Quantity < 0 || in.Quantity > item.Quantity {
			return ErrInvalidReturn
		}
		returned := item.Quantity - in.Quantity
		if returned == 0 {
			return nil
		}
		if err := txRepo.UpdateItemQuantity(ctx, item.ID, in.Quantity); err != nil {
			return err
		}
		if item.ItemType == entity.ItemTypeProduct && item.ProductID != nil {
			now := time.Now().In(uc.loc)
			tid := t.ID
			if err := movRepo.Create(ctx, &entity.StockMovement{
				OrgID:           orgID,
				BranchID:        t.BranchID,
				ProductID:       *item.ProductID,
				TransactionID:   &tid,
				Type:            entity.StockIn,
				Quantity:        returned,
				Remarks:         "Devolución " + t.TransactionNumber,
				TransactionDate: now,
				CreatedAt:       now,
			}); err != nil {
				return err
			}
		}
		return txRepo.UpdateStatus(ctx, orgID, t.ID, entity.TransactionReturned)
	})
	if err != nil {
		return nil, err
	}
	uc.salesChanged(ctx, orgID, saleBranch)
	return uc.Get(ctx, orgID, branchID, transactionID)
}

// Receipt genera el PDF del comprobante. Devuelve el contenido y el nombre de archivo sugerido.
func (uc *TransactionUseCase) Receipt(ctx context.Context, orgID, branchID, id int64) ([]byte, string, error) {
	t, items, err := uc.load(ctx, uc.txRepo, orgID, branchID, id)
	if err != nil {
		return nil, "", err
	}
	branch, err := uc.branchRepo.GetByID(ctx, orgID, t.BranchID)
	if err != nil {
		return nil, "", err
	}
	if branch == nil {
		branch = &entity.Branch{ID: t.BranchID}
	}
	if t.Customer == nil {
		if c, err := uc.customerRepo.GetByID(ctx, orgID, t.CustomerID); err == nil {
			t.Customer = c
		}
	}
	pdf, err := uc.receipts.GenerateReceipt(branch, t, items)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, "comprobante-" + t.TransactionNumber + ".pdf", nil
}

func (uc *TransactionUseCase) load(ctx context.Context, txRepo repository.TransactionRepository, orgID, branchID, id int64) (*entity.Transaction, []*entity.TransactionItem, error) {
	t, err := txRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, nil, err
	}
	if t == nil || (branchID != 0 && t.BranchID != branchID) {
		return nil, nil, domain.ErrNotFound
	}
	items, err := txRepo.ListItems(ctx, t.ID)
	if err != nil {
		return nil, nil, err
	}
	return t, items, nil
}

func toTransactionResponse(t *entity.Transaction, items []*entity.TransactionItem) dto.TransactionResponse {
	out := dto.TransactionResponse{
		ID:                t.ID,
		BranchID:          t.BranchID,
		CustomerID:        t.CustomerID,
		TransactionNumber: t.TransactionNumber,
		ReferenceNumber:   t.ReferenceNumber,
		PaymentType:       t.PaymentType,
		TotalAmount:       t.TotalAmount,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
	}
	if t.Customer != nil {
		out.CustomerName = t.Customer.Name
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.TransactionItemResponse{
			ID:        it.ID,
			ItemType:  it.ItemType,
			ProductID: it.ProductID,
			ServiceID: it.ServiceID,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Total,
		})
	}
	return out
}
