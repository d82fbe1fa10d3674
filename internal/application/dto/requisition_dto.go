package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequisitionLineRequest línea de requisición en creación/edición.
type RequisitionLineRequest struct {
	ProductID                  string          `json:"product_id"`
	Quantity                   decimal.Decimal `json:"quantity"` // > 0
	SuggestedSourceWarehouseID string          `json:"suggested_source_warehouse_id,omitempty"`
}

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	WarehouseID string                   `json:"warehouse_id"`
	Lines       []RequisitionLineRequest `json:"lines,omitempty"`
}

// UpdateRequisitionRequest body para PUT /api/requisitions/:id (solo en DRAFT).
type UpdateRequisitionRequest struct {
	WarehouseID *string                  `json:"warehouse_id,omitempty"`
	Lines       []RequisitionLineRequest `json:"lines,omitempty"`
}

// ApproveRequisitionRequest body para POST /api/requisitions/:id/approve.
type ApproveRequisitionRequest struct {
	// Bodega origen definitiva; puede diferir de las sugeridas en las líneas.
	FinalSourceWarehouseID string `json:"final_source_warehouse_id,omitempty"`
}

// RejectRequisitionRequest body para POST /api/requisitions/:id/reject.
type RejectRequisitionRequest struct {
	Reason string `json:"reason"` // obligatorio
}

// RequisitionLineResponse línea de requisición.
type RequisitionLineResponse struct {
	ID                         string          `json:"id"`
	ProductID                  string          `json:"product_id"`
	Quantity                   decimal.Decimal `json:"quantity"`
	SuggestedSourceWarehouseID string          `json:"suggested_source_warehouse_id,omitempty"`
}

// RequisitionResponse documento de requisición.
type RequisitionResponse struct {
	ID                     string                    `json:"id"`
	Reference              string                    `json:"reference"`
	WarehouseID            string                    `json:"warehouse_id"`
	FinalSourceWarehouseID string                    `json:"final_source_warehouse_id,omitempty"`
	Status                 string                    `json:"status"`
	RejectReason           string                    `json:"reject_reason,omitempty"`
	Lines                  []RequisitionLineResponse `json:"lines"`
	CreatedBy              string                    `json:"created_by"`
	SubmittedAt            *time.Time                `json:"submitted_at,omitempty"`
	ApprovedBy             string                    `json:"approved_by,omitempty"`
	ApprovedAt             *time.Time                `json:"approved_at,omitempty"`
	CreatedAt              time.Time                 `json:"created_at"`
	UpdatedAt              time.Time                 `json:"updated_at"`
}

// RequisitionListResponse página de requisiciones.
type RequisitionListResponse struct {
	Items []RequisitionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
