package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequisitionStatus estado de una requisición (conjunto cerrado).
type RequisitionStatus string

// Estados de Requisition: DRAFT → SUBMITTED → {APPROVED, REJECTED}.
const (
	RequisitionDraft     RequisitionStatus = "DRAFT"
	RequisitionSubmitted RequisitionStatus = "SUBMITTED"
	RequisitionApproved  RequisitionStatus = "APPROVED"
	RequisitionRejected  RequisitionStatus = "REJECTED"
)

// Editable indica si el documento admite cambios (solo en DRAFT).
func (s RequisitionStatus) Editable() bool { return s == RequisitionDraft }

// CanSubmit indica si se permite enviar a aprobación.
func (s RequisitionStatus) CanSubmit() bool { return s == RequisitionDraft }

// CanApprove indica si se permite aprobar.
func (s RequisitionStatus) CanApprove() bool { return s == RequisitionSubmitted }

// CanReject indica si se permite rechazar.
func (s RequisitionStatus) CanReject() bool { return s == RequisitionSubmitted }

// Requisition solicitud de abastecimiento: pipeline puro de aprobación.
// Nunca genera movimientos de stock; registra qué bodega debería surtir y en
// qué cantidad, para alimentar una Delivery posterior.
type Requisition struct {
	ID          string
	Reference   string
	WarehouseID string // bodega solicitante
	// Bodega origen fijada por el aprobador; puede diferir de las sugeridas en las líneas.
	FinalSourceWarehouseID string
	Status                 RequisitionStatus
	RejectReason           string
	Lines                  []RequisitionLine
	CreatedBy              string
	SubmittedAt            *time.Time
	ApprovedBy             string
	ApprovedAt             *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// RequisitionLine línea de requisición: producto, cantidad solicitada (> 0) y
// bodega origen sugerida opcional.
type RequisitionLine struct {
	ID                         string
	RequisitionID              string
	ProductID                  string
	Quantity                   decimal.Decimal
	SuggestedSourceWarehouseID string
}
