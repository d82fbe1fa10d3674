package repository

import (
	"context"
	"time"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementFilter filtros para listar movimientos del libro.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Type        string
	From        *time.Time
	To          *time.Time
}

// TransferImbalance un TransferID cuyos deltas no suman cero: el lado de
// salida se aplicó y el de entrada no (o viceversa). Estado detectable que
// requiere reconciliación manual, nunca reintento automático.
type TransferImbalance struct {
	TransferID    string
	SourceDocType string
	SourceDocID   string
	Net           decimal.Decimal // suma de deltas del TransferID (≠ 0)
	Movements     int
	FirstSeen     time.Time
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Solo inserta y lee: los movimientos jamás se actualizan ni se borran.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, f MovementFilter, limit, offset int) ([]*entity.Movement, error)

	// SumByKey re-suma los deltas de una llave desde el libro (auditoría:
	// debe coincidir exactamente con StockLevel.Quantity).
	SumByKey(ctx context.Context, productID, warehouseID, locationID string) (decimal.Decimal, error)

	// ExistsBySource indica si un documento ya generó movimientos
	// (guarda contra la doble aplicación).
	ExistsBySource(ctx context.Context, sourceDocType, sourceDocID string) (bool, error)

	// ListUnbalancedTransfers lista los traslados con deltas que no suman cero
	// (consulta de reconciliación para traslados parciales).
	ListUnbalancedTransfers(ctx context.Context) ([]TransferImbalance, error)
}
