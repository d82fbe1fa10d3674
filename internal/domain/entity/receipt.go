package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus estado de una recepción (conjunto cerrado).
type ReceiptStatus string

// Estados de Receipt: DRAFT → WAITING → DONE (terminal).
const (
	ReceiptDraft   ReceiptStatus = "DRAFT"
	ReceiptWaiting ReceiptStatus = "WAITING"
	ReceiptDone    ReceiptStatus = "DONE"
)

// Editable indica si el documento admite cambios (solo en DRAFT).
func (s ReceiptStatus) Editable() bool { return s == ReceiptDraft }

// CanConfirm indica si se permite pasar a WAITING.
func (s ReceiptStatus) CanConfirm() bool { return s == ReceiptDraft }

// CanValidate indica si se permite validar (generar movimientos y cerrar).
func (s ReceiptStatus) CanValidate() bool { return s == ReceiptDraft || s == ReceiptWaiting }

// Receipt documento de recepción de mercancía hacia una bodega.
// Inmutable una vez alcanza DONE; los movimientos que generó lo referencian
// vía SourceDocID, nunca al revés.
type Receipt struct {
	ID           string
	Reference    string // número legible emitido por el servicio de numeración
	WarehouseID  string
	SupplierName string
	Status       ReceiptStatus
	Lines        []ReceiptLine
	CreatedBy    string
	ValidatedBy  string
	ValidatedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReceiptLine línea de recepción: producto, ubicación destino opcional y cantidad (> 0).
type ReceiptLine struct {
	ID         string
	ReceiptID  string
	ProductID  string
	LocationID string // "" = sin ubicación
	Quantity   decimal.Decimal
}
