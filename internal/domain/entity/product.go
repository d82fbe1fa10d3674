package entity

import "time"

// Product representa un producto o SKU del inventario.
// El stock se maneja por llave (producto, bodega, ubicación) en StockLevel;
// el producto no guarda cantidades.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
