package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de la vista materializada sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel de la llave. Fila ausente = cantidad cero.
func (r *StockLevelRepo) Get(ctx context.Context, productID, warehouseID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, location_id, quantity, updated_at
		FROM stock_levels
		WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, warehouseID, locationID).Scan(
		&s.ProductID, &s.WarehouseID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{
				ProductID: productID, WarehouseID: warehouseID, LocationID: locationID,
				Quantity: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE). Si la
// fila no existe todavía, la materializa en cero y vuelve a bloquearla: la
// lectura "cantidad cero" también debe quedar bajo el candado, o dos ajustes
// concurrentes sobre una llave nueva calcularían su diferencia contra el
// mismo cero y se apilarían.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, warehouseID, locationID string) (*entity.StockLevel, error) {
	s, err := r.selectForUpdate(ctx, productID, warehouseID, locationID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}

	// El INSERT espera a cualquier tx concurrente que esté creando la misma
	// fila; al liberarse, el re-SELECT lee la cantidad ya confirmada.
	insert := `
		INSERT INTO stock_levels (product_id, warehouse_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, warehouse_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, warehouseID, locationID); err != nil {
		return nil, fmt.Errorf("materialize stock level: %w", err)
	}

	s, err = r.selectForUpdate(ctx, productID, warehouseID, locationID)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return s, nil
}

func (r *StockLevelRepo) selectForUpdate(ctx context.Context, productID, warehouseID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, location_id, quantity, updated_at
		FROM stock_levels
		WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, warehouseID, locationID).Scan(
		&s.ProductID, &s.WarehouseID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ApplyDelta incrementa atómicamente la cantidad de la llave, creando la fila
// si no existe. El incremento ocurre en la BD sobre el valor almacenado:
// nunca leer-modificar-escribir en la aplicación.
func (r *StockLevelRepo) ApplyDelta(ctx context.Context, productID, warehouseID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock_levels (product_id, warehouse_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id, location_id)
		DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var newQty decimal.Decimal
	err := r.q.QueryRow(ctx, query, productID, warehouseID, locationID, delta).Scan(&newQty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("apply stock delta: %w", err)
	}
	return newQty, nil
}

// ListByWarehouse lista los niveles de una bodega con paginación.
func (r *StockLevelRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, location_id, quantity, updated_at
		FROM stock_levels
		WHERE warehouse_id = $1
		ORDER BY product_id, location_id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by warehouse: %w", err)
	}
	defer rows.Close()
	return scanStockLevels(rows)
}

// ListByProduct lista los niveles de un producto en todas las bodegas.
func (r *StockLevelRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, location_id, quantity, updated_at
		FROM stock_levels
		WHERE product_id = $1
		ORDER BY warehouse_id, location_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by product: %w", err)
	}
	defer rows.Close()
	return scanStockLevels(rows)
}

func scanStockLevels(rows pgx.Rows) ([]*entity.StockLevel, error) {
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
