package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones comunes de ajuste (informativas; Reason es texto libre).
const (
	AdjustReasonDamage    = "DAMAGE"
	AdjustReasonCount     = "COUNT"
	AdjustReasonCorrection = "CORRECTION"
)

// Adjustment documento de ajuste de inventario: el único flujo que fija una
// cantidad absoluta. Captura la cantidad leída, la nueva y la diferencia que
// se aplicó como delta en el libro; el documento es de un solo paso y queda
// inmutable al crearse.
type Adjustment struct {
	ID          string
	Reference   string
	ProductID   string
	WarehouseID string
	LocationID  string // "" = sin ubicación
	OldQuantity decimal.Decimal
	NewQuantity decimal.Decimal
	Difference  decimal.Decimal // NewQuantity - OldQuantity
	Reason      string
	CreatedBy   string
	CreatedAt   time.Time
}
