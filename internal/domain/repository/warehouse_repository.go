package repository

import "github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	Delete(id string) error

	// Ubicaciones (bins) de la bodega.
	CreateLocation(location *entity.Location) error
	GetLocationByID(id string) (*entity.Location, error)
	ListLocations(warehouseID string) ([]*entity.Location, error)
}
