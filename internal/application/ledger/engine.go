package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// Engine es el único punto por el que pasa todo cambio de cantidad: incrementa
// el nivel materializado y agrega el movimiento inmutable como una sola unidad.
// No valida política de negocio (no rechaza deltas que dejen stock negativo ni
// re-valida existencia de producto/bodega): eso es responsabilidad del flujo
// que lo invoca. Para traslados de dos lados el flujo lo invoca dos veces, una
// por llave; cada llamada es atómica por sí sola.
type Engine struct {
	txRunner TxRunner
	log      zerolog.Logger
}

// NewEngine construye el motor del libro.
func NewEngine(txRunner TxRunner, log zerolog.Logger) *Engine {
	return &Engine{txRunner: txRunner, log: log}
}

// MovementInput entrada para aplicar un movimiento con delta relativo.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	LocationID  string // "" = sin ubicación

	// Contraparte informativa de un traslado (la otra llave del TransferID).
	CounterpartyWarehouseID string
	CounterpartyLocationID  string

	Delta decimal.Decimal // con signo; nunca cero
	Type  string          // entity.MovementType*

	SourceDocType string
	SourceDocID   string
	SourceLineID  string
	TransferID    string // "" si el movimiento no hace parte de un traslado

	ActorID string
}

func (in MovementInput) validate() error {
	if in.ProductID == "" || in.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if in.Delta.IsZero() {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.SourceDocType == "" || in.SourceDocID == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyMovement aplica un movimiento en su propia transacción: incrementa
// atómicamente el nivel de la llave (creando la fila si no existe) y agrega el
// movimiento. Un fallo de persistencia se reintenta una vez completo (la tx
// abortada no dejó efectos, re-ejecutarla es seguro); los errores de dominio
// no se reintentan.
func (e *Engine) ApplyMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var mov *entity.Movement
	run := func() error {
		return e.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			levelRepo repository.StockLevelRepository,
		) error {
			var err error
			mov, err = e.ApplyInTx(ctx, movRepo, levelRepo, in, time.Now())
			return err
		})
	}

	err := run()
	if err != nil && retryable(err) {
		e.log.Warn().Err(err).
			Str("product_id", in.ProductID).
			Str("warehouse_id", in.WarehouseID).
			Msg("fallo de persistencia al aplicar movimiento, reintentando una vez")
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyInTx aplica el movimiento usando repositorios ya atados a la
// transacción del caller (los flujos lo usan para cerrar documento y
// movimientos en una sola tx). El incremento del nivel ocurre sobre el valor
// almacenado, por lo que llamadas concurrentes sobre la misma llave serializan.
func (e *Engine) ApplyInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
	in MovementInput,
	now time.Time,
) (*entity.Movement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	newQty, err := levelRepo.ApplyDelta(ctx, in.ProductID, in.WarehouseID, in.LocationID, in.Delta)
	if err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ID:                      uuid.New().String(),
		ProductID:               in.ProductID,
		WarehouseID:             in.WarehouseID,
		LocationID:              in.LocationID,
		CounterpartyWarehouseID: in.CounterpartyWarehouseID,
		CounterpartyLocationID:  in.CounterpartyLocationID,
		Delta:                   in.Delta,
		Type:                    in.Type,
		SourceDocType:           in.SourceDocType,
		SourceDocID:             in.SourceDocID,
		SourceLineID:            in.SourceLineID,
		TransferID:              in.TransferID,
		ActorID:                 in.ActorID,
		CreatedAt:               now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	e.log.Debug().
		Str("movement_id", mov.ID).
		Str("type", mov.Type).
		Str("product_id", mov.ProductID).
		Str("warehouse_id", mov.WarehouseID).
		Str("location_id", mov.LocationID).
		Str("delta", mov.Delta.String()).
		Str("new_quantity", newQty.String()).
		Msg("movimiento aplicado")

	return mov, nil
}

// SetQuantityInput entrada para el camino de ajuste: fija una cantidad absoluta.
type SetQuantityInput struct {
	ProductID     string
	WarehouseID   string
	LocationID    string
	NewQuantity   decimal.Decimal
	SourceDocType string
	SourceDocID   string
	ActorID       string
}

// SetQuantityInTx fija la cantidad absoluta de una llave dentro de la tx del
// caller: bloquea la fila del nivel (SELECT FOR UPDATE), calcula la diferencia
// contra la cantidad leída y la aplica como delta, todo en la misma unidad
// atómica. Así un segundo ajuste concurrente no puede calcular su diferencia
// contra una lectura obsoleta. Devuelve el movimiento generado (nil si la
// diferencia es cero) y la cantidad previa.
func (e *Engine) SetQuantityInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
	in SetQuantityInput,
	now time.Time,
) (*entity.Movement, decimal.Decimal, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.SourceDocType == "" || in.SourceDocID == "" {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}

	level, err := levelRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID, in.LocationID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	oldQty := level.Quantity

	diff := in.NewQuantity.Sub(oldQty)
	if diff.IsZero() {
		return nil, oldQty, nil
	}

	mov, err := e.ApplyInTx(ctx, movRepo, levelRepo, MovementInput{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		LocationID:    in.LocationID,
		Delta:         diff,
		Type:          entity.MovementTypeADJUSTMENT,
		SourceDocType: in.SourceDocType,
		SourceDocID:   in.SourceDocID,
		ActorID:       in.ActorID,
	}, now)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return mov, oldQty, nil
}

// retryable: fallos de persistencia y conflictos de serialización sí; los
// errores de dominio se devuelven tal cual.
func retryable(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidInput, domain.ErrInvalidState, domain.ErrNotFound,
		domain.ErrInsufficientStock, domain.ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			return false
		}
	}
	return true
}
