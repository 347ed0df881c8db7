package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/application/usecase"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/infrastructure/barcode"
)

// ReagentHandler maneja las peticiones HTTP para reactivos (protegido).
type ReagentHandler struct {
	uc *usecase.ReagentUseCase
}

// NewReagentHandler construye el handler.
func NewReagentHandler(uc *usecase.ReagentUseCase) *ReagentHandler {
	return &ReagentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reactivo
// @Tags         reagents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReagentRequest  true  "Datos del reactivo"
// @Success      201   {object}  dto.ReagentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reagents [post]
func (h *ReagentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReagentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Reference == "" || in.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, reference y unit son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la referencia ya existe"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "minimum_stock no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener reactivo por ID
// @Tags         reagents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reactivo"
// @Success      200  {object}  dto.ReagentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reagents/{id} [get]
func (h *ReagentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reactivo no encontrado"})
	}
	return c.JSON(out)
}

// GetByBarcode godoc
// @Summary      Resolver reactivo por código de barras (escaneo)
// @Tags         reagents
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de barras"
// @Success      200   {object}  dto.ReagentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reagents/barcode/{code} [get]
func (h *ReagentHandler) GetByBarcode(c *fiber.Ctx) error {
	code := c.Params("code")
	out, err := h.uc.GetByBarcode(code)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código vacío"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay reactivo con ese código"})
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Etiqueta Code 128 del reactivo en PNG
// @Tags         reagents
// @Security     Bearer
// @Produce      png
// @Param        id  path  string  true  "ID del reactivo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reagents/{id}/label [get]
func (h *ReagentHandler) Label(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reactivo no encontrado"})
	}
	value := out.Barcode
	if value == "" {
		value = out.Reference
	}
	img, err := barcode.LabelPNG(value, 300, 80)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "image/png")
	return c.Send(img)
}

// List godoc
// @Summary      Listar reactivos
// @Tags         reagents
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Búsqueda por nombre o referencia (insensible a acentos)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ReagentListResponse
// @Router       /api/reagents [get]
func (h *ReagentHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Query("search"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar reactivo
// @Tags         reagents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del reactivo"
// @Param        body  body  dto.UpdateReagentRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ReagentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reagents/{id} [put]
func (h *ReagentHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateReagentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "minimum_stock no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reactivo no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar reactivo (borrado lógico)
// @Tags         reagents
// @Security     Bearer
// @Param        id  path  string  true  "ID del reactivo"
// @Success      204
// @Router       /api/reagents/{id} [delete]
func (h *ReagentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
