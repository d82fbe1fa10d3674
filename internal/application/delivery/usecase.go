package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el flujo de entregas.
type TxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		deliveryRepo repository.DeliveryRepository,
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error) error
}

// UseCase flujo de entrega: DRAFT → WAITING → READY → DONE. Con bodega destino
// la entrega es un traslado de dos lados: paso 1 (una tx) saca el stock del
// origen y cierra el documento; paso 2 (otra tx, mismo TransferID) lo entra al
// destino. No hay atomicidad entre los dos pasos: si el paso 2 falla queda un
// traslado parcial, detectable por la consulta de reconciliación, que nunca se
// reintenta automáticamente para no duplicar la entrada.
//
// Política adoptada: el stock se mueve al validar el origen; Accept del
// destino es solo una marca terminal y no mueve stock.
type UseCase struct {
	txRunner      TxRunner
	engine        *ledger.Engine
	deliveryRepo  repository.DeliveryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	numbering     *numbering.Service
	log           zerolog.Logger
}

// NewUseCase construye el flujo de entrega.
func NewUseCase(
	txRunner TxRunner,
	engine *ledger.Engine,
	deliveryRepo repository.DeliveryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	numbering *numbering.Service,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		deliveryRepo:  deliveryRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		numbering:     numbering,
		log:           log,
	}
}

// Create crea una entrega en DRAFT. La creación la autoriza el guard externo
// (rol gerente); aquí solo se validan referencias y líneas.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.SourceWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DestWarehouseID == in.SourceWarehouseID && in.DestWarehouseID != "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkWarehouse(in.SourceWarehouseID); err != nil {
		return nil, err
	}
	if in.DestWarehouseID != "" {
		if err := uc.checkWarehouse(in.DestWarehouseID); err != nil {
			return nil, err
		}
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}

	reference, err := uc.numbering.Next(ctx, numbering.DocDelivery)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Delivery{
		ID:                uuid.New().String(),
		Reference:         reference,
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
		Status:            entity.DeliveryDraft,
		Lines:             lines,
		CreatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for i := range d.Lines {
		d.Lines[i].DeliveryID = d.ID
	}
	if err := uc.deliveryRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// Update modifica bodegas o líneas. Solo permitido en DRAFT.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !d.Status.Editable() {
		return nil, domain.ErrInvalidState
	}
	if in.SourceWarehouseID != nil {
		if err := uc.checkWarehouse(*in.SourceWarehouseID); err != nil {
			return nil, err
		}
		d.SourceWarehouseID = *in.SourceWarehouseID
	}
	if in.DestWarehouseID != nil {
		if *in.DestWarehouseID != "" {
			if err := uc.checkWarehouse(*in.DestWarehouseID); err != nil {
				return nil, err
			}
		}
		d.DestWarehouseID = *in.DestWarehouseID
	}
	if d.DestWarehouseID != "" && d.DestWarehouseID == d.SourceWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	d.UpdatedAt = time.Now()
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	if in.Lines != nil {
		lines, err := uc.buildLines(in.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].DeliveryID = d.ID
		}
		if err := uc.deliveryRepo.ReplaceLines(ctx, d.ID, lines); err != nil {
			return nil, err
		}
		d.Lines = lines
	}
	return toDeliveryResponse(d), nil
}

// Confirm pasa la entrega de DRAFT a WAITING.
func (uc *UseCase) Confirm(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	return uc.advance(ctx, id, func(s entity.DeliveryStatus) bool { return s.CanConfirm() }, entity.DeliveryWaiting)
}

// MarkReady pasa la entrega de WAITING a READY.
func (uc *UseCase) MarkReady(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	return uc.advance(ctx, id, func(s entity.DeliveryStatus) bool { return s.CanMarkReady() }, entity.DeliveryReady)
}

func (uc *UseCase) advance(ctx context.Context, id string, allowed func(entity.DeliveryStatus) bool, to entity.DeliveryStatus) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !allowed(d.Status) {
		return nil, domain.ErrInvalidState
	}
	d.Status = to
	d.UpdatedAt = time.Now()
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// Validate mueve el stock y cierra la entrega.
//
// Paso 1 (una transacción): bloquea el documento, verifica por línea que el
// origen tenga cantidad suficiente (la fila del nivel queda bloqueada con
// FOR UPDATE, así dos validaciones concurrentes no sobre-venden), aplica el
// movimiento DELIVERY negativo y marca DONE. Re-validar un documento DONE
// falla con ErrInvalidState: la salida jamás se aplica dos veces.
//
// Paso 2 (otra transacción, solo con destino): aplica los movimientos
// DELIVERY positivos en la bodega destino con el mismo TransferID. Si este
// paso falla se devuelve ErrPartialTransfer y NO se reintenta: el estado queda
// detectable vía la consulta de reconciliación (TransferID con suma ≠ 0).
func (uc *UseCase) Validate(ctx context.Context, id, actorID string) (*dto.DeliveryResponse, error) {
	var out *entity.Delivery

	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error {
		d, err := deliveryRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if !d.Status.CanValidate() {
			return domain.ErrInvalidState
		}
		if len(d.Lines) == 0 {
			return domain.ErrInvalidInput
		}

		transferID := ""
		if d.DestWarehouseID != "" {
			transferID = uuid.New().String()
		}
		now := time.Now()
		for _, line := range d.Lines {
			level, err := levelRepo.GetForUpdate(ctx, line.ProductID, d.SourceWarehouseID, line.FromLocationID)
			if err != nil {
				return err
			}
			if level.Quantity.LessThan(line.Quantity) {
				return domain.ErrInsufficientStock
			}
			_, err = uc.engine.ApplyInTx(ctx, movRepo, levelRepo, ledger.MovementInput{
				ProductID:               line.ProductID,
				WarehouseID:             d.SourceWarehouseID,
				LocationID:              line.FromLocationID,
				CounterpartyWarehouseID: d.DestWarehouseID,
				CounterpartyLocationID:  line.ToLocationID,
				Delta:                   line.Quantity.Neg(),
				Type:                    entity.MovementTypeDELIVERY,
				SourceDocType:           entity.SourceDocDelivery,
				SourceDocID:             d.ID,
				SourceLineID:            line.ID,
				TransferID:              transferID,
				ActorID:                 actorID,
			}, now)
			if err != nil {
				return err
			}
		}

		d.Status = entity.DeliveryDone
		d.TransferID = transferID
		d.ValidatedBy = actorID
		d.ValidatedAt = &now
		d.UpdatedAt = now
		if err := deliveryRepo.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.DestWarehouseID != "" {
		if err := uc.applyDestinationSide(ctx, out, actorID); err != nil {
			uc.log.Error().Err(err).
				Str("delivery_id", out.ID).
				Str("transfer_id", out.TransferID).
				Msg("lado destino del traslado no aplicado: requiere reconciliación manual")
			return toDeliveryResponse(out), domain.ErrPartialTransfer
		}
	}
	return toDeliveryResponse(out), nil
}

// applyDestinationSide aplica las entradas en la bodega destino en una sola
// transacción separada del paso 1.
func (uc *UseCase) applyDestinationSide(ctx context.Context, d *entity.Delivery, actorID string) error {
	return uc.txRunner.RunDelivery(ctx, func(
		_ repository.DeliveryRepository,
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error {
		now := time.Now()
		for _, line := range d.Lines {
			_, err := uc.engine.ApplyInTx(ctx, movRepo, levelRepo, ledger.MovementInput{
				ProductID:               line.ProductID,
				WarehouseID:             d.DestWarehouseID,
				LocationID:              line.ToLocationID,
				CounterpartyWarehouseID: d.SourceWarehouseID,
				CounterpartyLocationID:  line.FromLocationID,
				Delta:                   line.Quantity,
				Type:                    entity.MovementTypeDELIVERY,
				SourceDocType:           entity.SourceDocDelivery,
				SourceDocID:             d.ID,
				SourceLineID:            line.ID,
				TransferID:              d.TransferID,
				ActorID:                 actorID,
			}, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Accept marca la entrega como aceptada por el destino. No mueve stock: el
// stock se movió al validar. Solo válido en DONE, con destino y una sola vez.
func (uc *UseCase) Accept(ctx context.Context, id, actorID string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.Status != entity.DeliveryDone || d.DestWarehouseID == "" || d.AcceptedAt != nil {
		return nil, domain.ErrInvalidState
	}
	now := time.Now()
	d.AcceptedBy = actorID
	d.AcceptedAt = &now
	d.UpdatedAt = now
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// GetByID obtiene una entrega con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return toDeliveryResponse(d), nil
}

// List lista entregas por bodega origen y estado con paginación.
func (uc *UseCase) List(ctx context.Context, warehouseID string, status entity.DeliveryStatus, limit, offset int) (*dto.DeliveryListResponse, error) {
	list, err := uc.deliveryRepo.List(ctx, warehouseID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeliveryResponse(d))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *UseCase) checkWarehouse(id string) error {
	wh, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UseCase) buildLines(in []dto.DeliveryLineRequest) ([]entity.DeliveryLine, error) {
	lines := make([]entity.DeliveryLine, 0, len(in))
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
		lines = append(lines, entity.DeliveryLine{
			ID:             uuid.New().String(),
			ProductID:      l.ProductID,
			FromLocationID: l.FromLocationID,
			ToLocationID:   l.ToLocationID,
			Quantity:       l.Quantity,
		})
	}
	return lines, nil
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	if d == nil {
		return nil
	}
	lines := make([]dto.DeliveryLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.DeliveryLineResponse{
			ID:             l.ID,
			ProductID:      l.ProductID,
			FromLocationID: l.FromLocationID,
			ToLocationID:   l.ToLocationID,
			Quantity:       l.Quantity,
		})
	}
	return &dto.DeliveryResponse{
		ID:                d.ID,
		Reference:         d.Reference,
		SourceWarehouseID: d.SourceWarehouseID,
		DestWarehouseID:   d.DestWarehouseID,
		Status:            string(d.Status),
		TransferID:        d.TransferID,
		Lines:             lines,
		CreatedBy:         d.CreatedBy,
		ValidatedBy:       d.ValidatedBy,
		ValidatedAt:       d.ValidatedAt,
		AcceptedBy:        d.AcceptedBy,
		AcceptedAt:        d.AcceptedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
