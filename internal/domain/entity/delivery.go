package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus estado de una entrega (conjunto cerrado).
type DeliveryStatus string

// Estados de Delivery: DRAFT → WAITING → READY → DONE (terminal).
const (
	DeliveryDraft   DeliveryStatus = "DRAFT"
	DeliveryWaiting DeliveryStatus = "WAITING"
	DeliveryReady   DeliveryStatus = "READY"
	DeliveryDone    DeliveryStatus = "DONE"
)

// Editable indica si el documento admite cambios (solo en DRAFT).
func (s DeliveryStatus) Editable() bool { return s == DeliveryDraft }

// CanConfirm indica si se permite pasar a WAITING.
func (s DeliveryStatus) CanConfirm() bool { return s == DeliveryDraft }

// CanMarkReady indica si se permite pasar a READY.
func (s DeliveryStatus) CanMarkReady() bool { return s == DeliveryWaiting }

// CanValidate indica si se permite validar (mover stock y cerrar).
func (s DeliveryStatus) CanValidate() bool { return s == DeliveryWaiting || s == DeliveryReady }

// Delivery documento de entrega desde una bodega origen. Si DestWarehouseID no
// está vacío la entrega es un traslado de dos lados: el stock sale del origen al
// validar y entra al destino en un segundo paso del mismo TransferID. La
// aceptación del destino (AcceptedBy/AcceptedAt) es solo una marca terminal:
// el stock se mueve al validar el origen, no al aceptar.
type Delivery struct {
	ID                string
	Reference         string
	SourceWarehouseID string
	DestWarehouseID   string // "" = entrega sin destino interno (salida definitiva)
	Status            DeliveryStatus
	TransferID        string // asignado al validar cuando hay destino
	Lines             []DeliveryLine
	CreatedBy         string
	ValidatedBy       string
	ValidatedAt       *time.Time
	AcceptedBy        string
	AcceptedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DeliveryLine línea de entrega: producto, ubicaciones origen/destino opcionales y cantidad (> 0).
type DeliveryLine struct {
	ID             string
	DeliveryID     string
	ProductID      string
	FromLocationID string // "" = sin ubicación en origen
	ToLocationID   string // "" = sin ubicación en destino
	Quantity       decimal.Decimal
}
