package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la cantidad actual de un producto en una llave
// (producto, bodega, ubicación). Es una vista materializada del libro de
// movimientos: en todo momento Quantity == Σ(deltas de los movimientos de la llave).
// La fila se crea perezosamente con el primer movimiento y nunca se borra, solo
// llega a cero. Solo el motor del libro (ledger.Engine) puede escribirla.
type StockLevel struct {
	ProductID   string
	WarehouseID string
	LocationID  string // "" = sin ubicación (bodega completa)
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
