package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location representa una ubicación (bin) dentro de una bodega.
// Las llaves de stock pueden o no incluir ubicación.
type Location struct {
	ID          string
	WarehouseID string
	Code        string // ej. "A-01-03"
	Name        string
	CreatedAt   time.Time
}
