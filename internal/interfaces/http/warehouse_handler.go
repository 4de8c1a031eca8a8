package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/catalog"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
)

// WarehouseHandler maneja el catálogo de bodegas.
type WarehouseHandler struct {
	uc *catalog.CatalogUseCase
}

// NewWarehouseHandler construye el handler de bodegas.
func NewWarehouseHandler(uc *catalog.CatalogUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "name, type, packing_warehouse_id"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	wh, err := h.uc.CreateWarehouse(catalog.CreateWarehouseInput{
		Name:               in.Name,
		Type:               in.Type,
		PackingWarehouseID: in.PackingWarehouseID,
		Address:            in.Address,
	})
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromWarehouse(wh))
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	items, err := h.uc.ListWarehouses(limit, offset)
	if err != nil {
		return internalOrDomainError(c, err)
	}
	out := make([]dto.WarehouseResponse, 0, len(items))
	for _, w := range items {
		out = append(out, dto.FromWarehouse(w))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	wh, err := h.uc.GetWarehouse(c.Params("id"))
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.JSON(dto.FromWarehouse(wh))
}
