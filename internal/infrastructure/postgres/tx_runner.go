package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/adjustment"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/delivery"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/receipt"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/requisition"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// El mismo runner sirve a todos los flujos.
var (
	_ ledger.TxRunner      = (*TxRunner)(nil)
	_ receipt.TxRunner     = (*TxRunner)(nil)
	_ delivery.TxRunner    = (*TxRunner)(nil)
	_ adjustment.TxRunner  = (*TxRunner)(nil)
	_ requisition.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada flujo
// tiene su variante Run* con los repositorios que necesita, todos atados a la
// misma tx: commit si fn retorna nil, rollback si no.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repositorios del motor del libro.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx), NewStockLevelRepository(tx)); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunReceipt inicia una transacción para la validación de recepciones.
func (r *TxRunner) RunReceipt(ctx context.Context, fn func(
	receiptRepo repository.ReceiptRepository,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewReceiptRepository(tx), NewMovementRepository(tx), NewStockLevelRepository(tx)); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunDelivery inicia una transacción para la validación de entregas
// (cada lado de un traslado corre en su propia llamada).
func (r *TxRunner) RunDelivery(ctx context.Context, fn func(
	deliveryRepo repository.DeliveryRepository,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDeliveryRepository(tx), NewMovementRepository(tx), NewStockLevelRepository(tx)); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunAdjustment inicia una transacción para el flujo de ajuste: documento y
// movimiento se confirman juntos o ninguno.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	adjRepo repository.AdjustmentRepository,
	movRepo repository.MovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAdjustmentRepository(tx), NewMovementRepository(tx), NewStockLevelRepository(tx)); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunRequisition inicia una transacción para las transiciones de requisición.
func (r *TxRunner) RunRequisition(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRequisitionRepository(tx)); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
