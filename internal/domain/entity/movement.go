package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeRECEIPT    = "RECEIPT"    // entrada por recepción
	MovementTypeDELIVERY   = "DELIVERY"   // salida por entrega (con o sin destino)
	MovementTypeTRANSFER   = "TRANSFER"   // traslado directo entre bodegas
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste de inventario
)

// Tipos de documento origen de un movimiento.
const (
	SourceDocReceipt    = "receipt"
	SourceDocDelivery   = "delivery"
	SourceDocAdjustment = "adjustment"
)

// ValidMovementType indica si el tipo pertenece al conjunto cerrado de tipos del libro.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeRECEIPT, MovementTypeDELIVERY, MovementTypeTRANSFER, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// Movement es un registro inmutable del libro de inventario: un delta con signo
// sobre la llave (producto, bodega, ubicación) con su procedencia completa.
// Nunca se actualiza ni se borra; las correcciones son nuevos movimientos compensatorios.
// El stock materializado (StockLevel) es derivable re-sumando los movimientos de su llave.
type Movement struct {
	ID          string
	ProductID   string
	WarehouseID string
	LocationID  string // "" = sin ubicación (bodega completa)

	// Contraparte de un traslado de dos lados (informativo, no afecta la llave).
	CounterpartyWarehouseID string
	CounterpartyLocationID  string

	Delta decimal.Decimal // con signo; nunca cero
	Type  string          // RECEIPT, DELIVERY, TRANSFER, ADJUSTMENT

	SourceDocType string // receipt, delivery, adjustment
	SourceDocID   string
	SourceLineID  string // línea del documento que generó el movimiento
	TransferID    string // correlaciona los dos lados de un traslado; "" si no aplica

	ActorID   string
	CreatedAt time.Time
}
