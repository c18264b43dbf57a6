package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// CatalogHandler maneja artículos, ubicaciones y la vista de stock.
type CatalogHandler struct {
	items     *usecase.ItemUseCase
	locations *usecase.LocationUseCase
	stock     *ledger.StockQueryUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(items *usecase.ItemUseCase, locations *usecase.LocationUseCase, stock *ledger.StockQueryUseCase) *CatalogHandler {
	return &CatalogHandler{items: items, locations: locations, stock: stock}
}

// ListItems godoc
// @Summary      Listar artículos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.items.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// CreateItem godoc
// @Summary      Crear artículo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "sku, name, unit, barcode, minStock"
// @Success      201  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem godoc
// @Summary      Actualizar artículo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del artículo"
// @Param        body  body  dto.ItemRequest  true  "campos a reemplazar"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *CatalogHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem godoc
// @Summary      Eliminar artículo (si nada lo referencia)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.OkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *CatalogHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// ListLocations godoc
// @Summary      Listar ubicaciones
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.locations.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(locations)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationRequest  true  "code, description"
// @Success      201  {object}  dto.LocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	location, err := h.locations.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// ListStock godoc
// @Summary      Vista de stock por (artículo, ubicación)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Filtro por sku, nombre o código de barras"
// @Success      200  {array}  dto.StockRowResponse
// @Router       /api/stock [get]
func (h *CatalogHandler) ListStock(c *fiber.Ctx) error {
	rows, err := h.stock.List(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
