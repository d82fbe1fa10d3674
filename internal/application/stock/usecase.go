package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// UseCase caminos de lectura del libro y la vista materializada: consulta de
// niveles, listado de movimientos para auditoría y reconciliación de traslados.
type UseCase struct {
	levelRepo repository.StockLevelRepository
	movRepo   repository.MovementRepository
}

// NewUseCase construye el caso de uso de consultas de stock.
func NewUseCase(levelRepo repository.StockLevelRepository, movRepo repository.MovementRepository) *UseCase {
	return &UseCase{levelRepo: levelRepo, movRepo: movRepo}
}

// GetStockLevel devuelve la cantidad actual de la llave. Fila ausente = 0.
func (uc *UseCase) GetStockLevel(ctx context.Context, productID, warehouseID, locationID string) (*dto.StockLevelResponse, error) {
	level, err := uc.levelRepo.Get(ctx, productID, warehouseID, locationID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockLevelResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		Quantity:    decimal.Zero,
	}
	if level != nil {
		resp.Quantity = level.Quantity
		resp.UpdatedAt = &level.UpdatedAt
	}
	return resp, nil
}

// ListByWarehouse lista los niveles de una bodega.
func (uc *UseCase) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]dto.StockLevelResponse, error) {
	levels, err := uc.levelRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		updatedAt := l.UpdatedAt
		out = append(out, dto.StockLevelResponse{
			ProductID:   l.ProductID,
			WarehouseID: l.WarehouseID,
			LocationID:  l.LocationID,
			Quantity:    l.Quantity,
			UpdatedAt:   &updatedAt,
		})
	}
	return out, nil
}

// ListMovements lista movimientos del libro con filtros y paginación.
func (uc *UseCase) ListMovements(ctx context.Context, f repository.MovementFilter, limit, offset int) (*dto.MovementListResponse, error) {
	movs, err := uc.movRepo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, dto.MovementResponse{
			ID:                      m.ID,
			ProductID:               m.ProductID,
			WarehouseID:             m.WarehouseID,
			LocationID:              m.LocationID,
			CounterpartyWarehouseID: m.CounterpartyWarehouseID,
			CounterpartyLocationID:  m.CounterpartyLocationID,
			Delta:                   m.Delta,
			Type:                    m.Type,
			SourceDocType:           m.SourceDocType,
			SourceDocID:             m.SourceDocID,
			SourceLineID:            m.SourceLineID,
			TransferID:              m.TransferID,
			ActorID:                 m.ActorID,
			CreatedAt:               m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// AuditKey re-suma los deltas del libro para la llave y los compara contra la
// vista materializada. Consistent=false significa que el invariante
// nivel == Σ(deltas) está roto y requiere intervención.
func (uc *UseCase) AuditKey(ctx context.Context, productID, warehouseID, locationID string) (*dto.StockAuditResponse, error) {
	ledgerQty, err := uc.movRepo.SumByKey(ctx, productID, warehouseID, locationID)
	if err != nil {
		return nil, err
	}
	levelQty := decimal.Zero
	level, err := uc.levelRepo.Get(ctx, productID, warehouseID, locationID)
	if err != nil {
		return nil, err
	}
	if level != nil {
		levelQty = level.Quantity
	}
	return &dto.StockAuditResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		LevelQty:    levelQty,
		LedgerQty:   ledgerQty,
		Consistent:  levelQty.Equal(ledgerQty),
	}, nil
}

// ListUnbalancedTransfers lista traslados cuyos deltas no suman cero:
// el lado de salida se aplicó sin su entrada (o viceversa). Alimenta la
// reconciliación manual de traslados parciales.
func (uc *UseCase) ListUnbalancedTransfers(ctx context.Context) ([]dto.TransferImbalanceResponse, error) {
	list, err := uc.movRepo.ListUnbalancedTransfers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferImbalanceResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TransferImbalanceResponse{
			TransferID:    t.TransferID,
			SourceDocType: t.SourceDocType,
			SourceDocID:   t.SourceDocID,
			Net:           t.Net,
			Movements:     t.Movements,
			FirstSeen:     t.FirstSeen,
		})
	}
	return out, nil
}
