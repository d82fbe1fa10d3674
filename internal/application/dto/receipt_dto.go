package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLineRequest línea de recepción en creación/edición.
type ReceiptLineRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"` // > 0
}

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	WarehouseID  string               `json:"warehouse_id"`
	SupplierName string               `json:"supplier_name,omitempty"`
	Lines        []ReceiptLineRequest `json:"lines"`
}

// UpdateReceiptRequest body para PUT /api/receipts/:id (solo en DRAFT).
type UpdateReceiptRequest struct {
	WarehouseID  *string              `json:"warehouse_id,omitempty"`
	SupplierName *string              `json:"supplier_name,omitempty"`
	Lines        []ReceiptLineRequest `json:"lines,omitempty"`
}

// ReceiptLineResponse línea de recepción.
type ReceiptLineResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ReceiptResponse documento de recepción.
type ReceiptResponse struct {
	ID           string                `json:"id"`
	Reference    string                `json:"reference"`
	WarehouseID  string                `json:"warehouse_id"`
	SupplierName string                `json:"supplier_name,omitempty"`
	Status       string                `json:"status"`
	Lines        []ReceiptLineResponse `json:"lines"`
	CreatedBy    string                `json:"created_by"`
	ValidatedBy  string                `json:"validated_by,omitempty"`
	ValidatedAt  *time.Time            `json:"validated_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ReceiptListResponse página de recepciones.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
