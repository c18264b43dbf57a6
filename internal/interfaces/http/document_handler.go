package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// DocumentHandler maneja las peticiones HTTP de documentos de movimiento.
// Un solo handler sirve las tres clases (receipts, dispatches, stocktakes):
// cada ruta se registra con la clase fijada por closure.
type DocumentHandler struct {
	uc *ledger.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *ledger.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// List godoc
// @Summary      Listar documentos de la clase (con líneas), recientes primero
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DocumentResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/{kind} [get]
func (h *DocumentHandler) List(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := h.uc.List(c.Context(), kind)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(docs)
	}
}

// Get godoc
// @Summary      Obtener un documento por ID
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [get]
func (h *DocumentHandler) Get(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := h.uc.Get(c.Context(), kind, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// Create godoc
// @Summary      Crear documento en draft (cabecera + líneas, atómico)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DocumentRequest  true  "number, supplier/customer según la clase, date, lines (mínimo una)"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *DocumentHandler) Create(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.DocumentRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		doc, err := h.uc.Create(c.Context(), kind, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// Update godoc
// @Summary      Reemplazar por completo un documento en draft (cabecera + set de líneas)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del documento"
// @Param        body  body  dto.DocumentRequest  true  "reemplazo completo, no diff"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [put]
func (h *DocumentHandler) Update(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.DocumentRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		doc, err := h.uc.Update(c.Context(), kind, c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}

// Delete godoc
// @Summary      Eliminar un documento en draft
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.OkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [delete]
func (h *DocumentHandler) Delete(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := h.uc.Delete(c.Context(), kind, c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.OkResponse{Ok: true})
	}
}

// Post godoc
// @Summary      Contabilizar un documento (draft -> posted, irreversible)
// @Description  Aplica las líneas al stock según la política de la clase
//               (increment/decrement/set) y marca el documento como posted,
//               todo en una transacción.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id}/post [post]
func (h *DocumentHandler) Post(kind entity.DocumentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := h.uc.Post(c.Context(), kind, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(doc)
	}
}
