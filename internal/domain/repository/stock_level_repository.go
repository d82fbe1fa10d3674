package repository

import (
	"context"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockLevelRepository define el puerto de la vista materializada de stock por
// llave (producto, bodega, ubicación). Escrita únicamente por el motor del libro.
type StockLevelRepository interface {
	// Get obtiene el nivel de la llave. Fila ausente = cantidad cero (no es error).
	Get(ctx context.Context, productID, warehouseID, locationID string) (*entity.StockLevel, error)

	// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE).
	// Usado por el flujo de ajuste para que leer-la-cantidad y aplicar-el-delta
	// sean una sola unidad atómica. Fila ausente = cantidad cero, sin bloqueo.
	GetForUpdate(ctx context.Context, productID, warehouseID, locationID string) (*entity.StockLevel, error)

	// ApplyDelta incrementa atómicamente la cantidad de la llave en delta,
	// creando la fila con quantity = delta si no existe. Devuelve la cantidad
	// resultante. El incremento ocurre sobre el valor almacenado (nunca
	// leer-modificar-escribir en la aplicación): dos llamadas concurrentes
	// sobre la misma llave serializan sus incrementos.
	ApplyDelta(ctx context.Context, productID, warehouseID, locationID string, delta decimal.Decimal) (decimal.Decimal, error)

	// ListByWarehouse lista los niveles de una bodega con paginación.
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error)

	// ListByProduct lista los niveles de un producto en todas las bodegas.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error)
}
