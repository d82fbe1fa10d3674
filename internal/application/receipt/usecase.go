package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita la validación de recepciones: el cierre del
// documento y los movimientos de sus líneas se confirman juntos.
type TxRunner interface {
	RunReceipt(ctx context.Context, fn func(
		receiptRepo repository.ReceiptRepository,
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error) error
}

// UseCase flujo de recepción: DRAFT → WAITING → DONE. El único productor
// legítimo de movimientos tipo RECEIPT.
type UseCase struct {
	txRunner      TxRunner
	engine        *ledger.Engine
	receiptRepo   repository.ReceiptRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	numbering     *numbering.Service
}

// NewUseCase construye el flujo de recepción.
func NewUseCase(
	txRunner TxRunner,
	engine *ledger.Engine,
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	numbering *numbering.Service,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		receiptRepo:   receiptRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		numbering:     numbering,
	}
}

// Create crea una recepción en DRAFT con sus líneas.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}

	reference, err := uc.numbering.Next(ctx, numbering.DocReceipt)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.Receipt{
		ID:           uuid.New().String(),
		Reference:    reference,
		WarehouseID:  in.WarehouseID,
		SupplierName: in.SupplierName,
		Status:       entity.ReceiptDraft,
		Lines:        lines,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := range r.Lines {
		r.Lines[i].ReceiptID = r.ID
	}
	if err := uc.receiptRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toReceiptResponse(r), nil
}

// Update modifica bodega, proveedor o líneas. Solo permitido en DRAFT.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error) {
	r, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !r.Status.Editable() {
		return nil, domain.ErrInvalidState
	}
	if in.WarehouseID != nil {
		wh, err := uc.warehouseRepo.GetByID(*in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		r.WarehouseID = *in.WarehouseID
	}
	if in.SupplierName != nil {
		r.SupplierName = *in.SupplierName
	}
	r.UpdatedAt = time.Now()
	if err := uc.receiptRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	if in.Lines != nil {
		lines, err := uc.buildLines(in.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].ReceiptID = r.ID
		}
		if err := uc.receiptRepo.ReplaceLines(ctx, r.ID, lines); err != nil {
			return nil, err
		}
		r.Lines = lines
	}
	return toReceiptResponse(r), nil
}

// Confirm pasa la recepción de DRAFT a WAITING.
func (uc *UseCase) Confirm(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	r, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !r.Status.CanConfirm() {
		return nil, domain.ErrInvalidState
	}
	r.Status = entity.ReceiptWaiting
	r.UpdatedAt = time.Now()
	if err := uc.receiptRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toReceiptResponse(r), nil
}

// Validate cierra la recepción: aplica un movimiento RECEIPT positivo por
// línea y marca el documento DONE, todo en una sola transacción. La fila del
// documento se bloquea (SELECT FOR UPDATE) para que dos validaciones
// concurrentes serialicen: la segunda ve DONE y falla con ErrInvalidState, la
// entrada jamás se aplica dos veces.
func (uc *UseCase) Validate(ctx context.Context, id, actorID string) (*dto.ReceiptResponse, error) {
	var out *entity.Receipt
	err := uc.txRunner.RunReceipt(ctx, func(
		receiptRepo repository.ReceiptRepository,
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error {
		r, err := receiptRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if !r.Status.CanValidate() {
			return domain.ErrInvalidState
		}
		if len(r.Lines) == 0 {
			return domain.ErrInvalidInput
		}

		now := time.Now()
		for _, line := range r.Lines {
			_, err := uc.engine.ApplyInTx(ctx, movRepo, levelRepo, ledger.MovementInput{
				ProductID:     line.ProductID,
				WarehouseID:   r.WarehouseID,
				LocationID:    line.LocationID,
				Delta:         line.Quantity,
				Type:          entity.MovementTypeRECEIPT,
				SourceDocType: entity.SourceDocReceipt,
				SourceDocID:   r.ID,
				SourceLineID:  line.ID,
				ActorID:       actorID,
			}, now)
			if err != nil {
				return err
			}
		}

		r.Status = entity.ReceiptDone
		r.ValidatedBy = actorID
		r.ValidatedAt = &now
		r.UpdatedAt = now
		if err := receiptRepo.Update(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(out), nil
}

// GetByID obtiene una recepción con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	r, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return toReceiptResponse(r), nil
}

// List lista recepciones por bodega y estado con paginación.
func (uc *UseCase) List(ctx context.Context, warehouseID string, status entity.ReceiptStatus, limit, offset int) (*dto.ReceiptListResponse, error) {
	list, err := uc.receiptRepo.List(ctx, warehouseID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReceiptResponse(r))
	}
	return &dto.ReceiptListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// buildLines valida y materializa las líneas: producto existente y cantidad > 0.
func (uc *UseCase) buildLines(in []dto.ReceiptLineRequest) ([]entity.ReceiptLine, error) {
	lines := make([]entity.ReceiptLine, 0, len(in))
	for _, l := range in {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.ReceiptLine{
			ID:         uuid.New().String(),
			ProductID:  l.ProductID,
			LocationID: l.LocationID,
			Quantity:   l.Quantity,
		})
	}
	return lines, nil
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	if r == nil {
		return nil
	}
	lines := make([]dto.ReceiptLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.ReceiptLineResponse{
			ID:         l.ID,
			ProductID:  l.ProductID,
			LocationID: l.LocationID,
			Quantity:   l.Quantity,
		})
	}
	return &dto.ReceiptResponse{
		ID:           r.ID,
		Reference:    r.Reference,
		WarehouseID:  r.WarehouseID,
		SupplierName: r.SupplierName,
		Status:       string(r.Status),
		Lines:        lines,
		CreatedBy:    r.CreatedBy,
		ValidatedBy:  r.ValidatedBy,
		ValidatedAt:  r.ValidatedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
