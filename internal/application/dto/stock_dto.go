package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelResponse nivel actual de una llave (producto, bodega, ubicación).
type StockLevelResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	LocationID  string          `json:"location_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// MovementResponse un registro del libro de movimientos.
type MovementResponse struct {
	ID                      string          `json:"id"`
	ProductID               string          `json:"product_id"`
	WarehouseID             string          `json:"warehouse_id"`
	LocationID              string          `json:"location_id,omitempty"`
	CounterpartyWarehouseID string          `json:"counterparty_warehouse_id,omitempty"`
	CounterpartyLocationID  string          `json:"counterparty_location_id,omitempty"`
	Delta                   decimal.Decimal `json:"delta"`
	Type                    string          `json:"type"`
	SourceDocType           string          `json:"source_doc_type"`
	SourceDocID             string          `json:"source_doc_id"`
	SourceLineID            string          `json:"source_line_id,omitempty"`
	TransferID              string          `json:"transfer_id,omitempty"`
	ActorID                 string          `json:"actor_id"`
	CreatedAt               time.Time       `json:"created_at"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockAuditResponse re-suma del libro contra la vista materializada para una llave.
type StockAuditResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	LocationID  string          `json:"location_id,omitempty"`
	LevelQty    decimal.Decimal `json:"level_quantity"`
	LedgerQty   decimal.Decimal `json:"ledger_quantity"`
	Consistent  bool            `json:"consistent"`
}

// TransferImbalanceResponse traslado cuyo TransferID no suma cero (parcial).
type TransferImbalanceResponse struct {
	TransferID    string          `json:"transfer_id"`
	SourceDocType string          `json:"source_doc_type"`
	SourceDocID   string          `json:"source_doc_id"`
	Net           decimal.Decimal `json:"net"`
	Movements     int             `json:"movements"`
	FirstSeen     time.Time       `json:"first_seen"`
}
