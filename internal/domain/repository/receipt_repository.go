package repository

import (
	"context"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia para Receipt (DIP).
type ReceiptRepository interface {
	Create(ctx context.Context, r *entity.Receipt) error
	// GetByID devuelve el documento con sus líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	// GetForUpdate bloquea la fila del documento (SELECT FOR UPDATE) para que
	// dos validaciones concurrentes del mismo documento serialicen.
	GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error)
	// Update persiste cabecera y estado (no las líneas).
	Update(ctx context.Context, r *entity.Receipt) error
	ReplaceLines(ctx context.Context, receiptID string, lines []entity.ReceiptLine) error
	List(ctx context.Context, warehouseID string, status entity.ReceiptStatus, limit, offset int) ([]*entity.Receipt, error)
}
