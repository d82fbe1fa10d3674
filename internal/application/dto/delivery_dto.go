package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryLineRequest línea de entrega en creación/edición.
type DeliveryLineRequest struct {
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id,omitempty"`
	ToLocationID   string          `json:"to_location_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"` // > 0
}

// CreateDeliveryRequest body para POST /api/deliveries. DestWarehouseID vacío
// = salida definitiva; no vacío = traslado de dos lados.
type CreateDeliveryRequest struct {
	SourceWarehouseID string                `json:"source_warehouse_id"`
	DestWarehouseID   string                `json:"dest_warehouse_id,omitempty"`
	Lines             []DeliveryLineRequest `json:"lines"`
}

// UpdateDeliveryRequest body para PUT /api/deliveries/:id (solo en DRAFT).
type UpdateDeliveryRequest struct {
	SourceWarehouseID *string               `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   *string               `json:"dest_warehouse_id,omitempty"`
	Lines             []DeliveryLineRequest `json:"lines,omitempty"`
}

// DeliveryLineResponse línea de entrega.
type DeliveryLineResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id,omitempty"`
	ToLocationID   string          `json:"to_location_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// DeliveryResponse documento de entrega.
type DeliveryResponse struct {
	ID                string                 `json:"id"`
	Reference         string                 `json:"reference"`
	SourceWarehouseID string                 `json:"source_warehouse_id"`
	DestWarehouseID   string                 `json:"dest_warehouse_id,omitempty"`
	Status            string                 `json:"status"`
	TransferID        string                 `json:"transfer_id,omitempty"`
	Lines             []DeliveryLineResponse `json:"lines"`
	CreatedBy         string                 `json:"created_by"`
	ValidatedBy       string                 `json:"validated_by,omitempty"`
	ValidatedAt       *time.Time             `json:"validated_at,omitempty"`
	AcceptedBy        string                 `json:"accepted_by,omitempty"`
	AcceptedAt        *time.Time             `json:"accepted_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// DeliveryListResponse página de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
