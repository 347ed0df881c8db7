package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/application/export"
	"github.com/jhoicas/LabStock-api/internal/domain"
)

// ExportHandler maneja los jobs de exportación (protegido).
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar exportación de inventario o movimientos
// @Tags         exports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExportRequest  true  "type: inventory | movements"
// @Success      202   {object}  dto.ExportJobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/exports [post]
func (h *ExportHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser inventory o movements"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// GetByID godoc
// @Summary      Consultar estado de un job de exportación
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del job"
// @Success      200  {object}  dto.ExportJobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exports/{id} [get]
func (h *ExportHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "job no encontrado"})
	}
	return c.JSON(out)
}
