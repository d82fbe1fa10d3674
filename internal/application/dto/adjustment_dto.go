package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyAdjustmentRequest body para POST /api/adjustments: fija la cantidad
// absoluta de una llave con una razón obligatoria.
type ApplyAdjustmentRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	LocationID  string          `json:"location_id,omitempty"`
	NewQuantity decimal.Decimal `json:"new_quantity"` // >= 0
	Reason      string          `json:"reason"`
}

// AdjustmentResponse documento de ajuste con la diferencia aplicada al libro.
type AdjustmentResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	LocationID  string          `json:"location_id,omitempty"`
	OldQuantity decimal.Decimal `json:"old_quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Difference  decimal.Decimal `json:"difference"`
	Reason      string          `json:"reason"`
	MovementID  string          `json:"movement_id,omitempty"` // vacío si la diferencia fue cero
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AdjustmentListResponse página de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
