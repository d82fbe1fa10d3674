package adjustment

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
// repositorios que necesita el flujo de ajuste.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		adjRepo repository.AdjustmentRepository,
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error) error
}

// UseCase flujo de ajuste: el único que fija cantidades absolutas. De un solo
// paso: lee la cantidad actual, calcula la diferencia y la aplica como delta.
// Leer-y-aplicar ocurre dentro de la misma transacción con la fila del nivel
// bloqueada (Engine.SetQuantityInTx): dos ajustes concurrentes a la misma
// llave serializan y ninguno calcula contra una lectura obsoleta.
type UseCase struct {
	txRunner      TxRunner
	engine        *ledger.Engine
	adjRepo       repository.AdjustmentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	numbering     *numbering.Service
}

// NewUseCase construye el flujo de ajuste.
func NewUseCase(
	txRunner TxRunner,
	engine *ledger.Engine,
	adjRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	numbering *numbering.Service,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		adjRepo:       adjRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		numbering:     numbering,
	}
}

// Apply fija la cantidad absoluta de una llave: persiste el documento de
// ajuste (old/new/difference/reason) y el movimiento ADJUSTMENT en la misma
// transacción. NewQuantity negativo se rechaza; razón obligatoria.
func (uc *UseCase) Apply(ctx context.Context, actorID string, in dto.ApplyAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.NewQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	reference, err := uc.numbering.Next(ctx, numbering.DocAdjustment)
	if err != nil {
		return nil, err
	}

	adj := &entity.Adjustment{
		ID:          uuid.New().String(),
		Reference:   reference,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		LocationID:  in.LocationID,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		CreatedBy:   actorID,
	}
	var movementID string

	err = uc.txRunner.RunAdjustment(ctx, func(
		adjRepo repository.AdjustmentRepository,
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error {
		now := time.Now()
		mov, oldQty, err := uc.engine.SetQuantityInTx(ctx, movRepo, levelRepo, ledger.SetQuantityInput{
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			LocationID:    in.LocationID,
			NewQuantity:   in.NewQuantity,
			SourceDocType: entity.SourceDocAdjustment,
			SourceDocID:   adj.ID,
			ActorID:       actorID,
		}, now)
		if err != nil {
			return err
		}
		adj.OldQuantity = oldQty
		adj.Difference = in.NewQuantity.Sub(oldQty)
		adj.CreatedAt = now
		if mov != nil {
			movementID = mov.ID
		}
		return adjRepo.Create(ctx, adj)
	})
	if err != nil {
		return nil, err
	}

	resp := toAdjustmentResponse(adj)
	resp.MovementID = movementID
	return resp, nil
}

// GetByID obtiene un ajuste por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, nil
	}
	return toAdjustmentResponse(adj), nil
}

// List lista ajustes por bodega con paginación.
func (uc *UseCase) List(ctx context.Context, warehouseID string, limit, offset int) (*dto.AdjustmentListResponse, error) {
	list, err := uc.adjRepo.List(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toAdjustmentResponse(a *entity.Adjustment) *dto.AdjustmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AdjustmentResponse{
		ID:          a.ID,
		Reference:   a.Reference,
		ProductID:   a.ProductID,
		WarehouseID: a.WarehouseID,
		LocationID:  a.LocationID,
		OldQuantity: a.OldQuantity,
		NewQuantity: a.NewQuantity,
		Difference:  a.Difference,
		Reason:      a.Reason,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
	}
}
