package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Nirmal21D/StockMaster-sub001/internal/application/dto"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/stock"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// StockHandler maneja las consultas de niveles, movimientos y auditoría (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetLevel godoc
// @Summary      Consultar cantidad actual de una llave (producto, bodega, ubicación)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        location_id   query  string  false  "ID de la ubicación (vacío = sin ubicación)"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/levels/one [get]
func (h *StockHandler) GetLevel(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son obligatorios"})
	}
	out, err := h.uc.GetStockLevel(c.Context(), productID, warehouseID, c.Query("location_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListLevels godoc
// @Summary      Listar niveles de stock de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {array}  dto.StockLevelResponse
// @Router       /api/stock/levels [get]
func (h *StockHandler) ListLevels(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es obligatorio"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.ListByWarehouse(c.Context(), warehouseID, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos del libro (auditoría)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        type          query  string  false  "RECEIPT | DELIVERY | TRANSFER | ADJUSTMENT"
// @Param        from          query  string  false  "Fecha inicio (RFC3339)"
// @Param        to            query  string  false  "Fecha fin (RFC3339)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	f := repository.MovementFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		f.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		f.To = &t
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.ListMovements(c.Context(), f, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Audit godoc
// @Summary      Auditar una llave: re-suma el libro y compara con el nivel materializado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        location_id   query  string  false  "ID de la ubicación"
// @Success      200  {object}  dto.StockAuditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/audit [get]
func (h *StockHandler) Audit(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son obligatorios"})
	}
	out, err := h.uc.AuditKey(c.Context(), productID, warehouseID, c.Query("location_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UnbalancedTransfers godoc
// @Summary      Listar traslados parciales (deltas que no suman cero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransferImbalanceResponse
// @Router       /api/stock/transfers/unbalanced [get]
func (h *StockHandler) UnbalancedTransfers(c *fiber.Ctx) error {
	out, err := h.uc.ListUnbalancedTransfers(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}
