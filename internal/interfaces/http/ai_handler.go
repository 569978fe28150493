package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// AIHandler maneja la extracción de datos de factura asistida por IA.
type AIHandler struct {
	uc  *usecase.ExtractionUseCase
	log *logger.Logger
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.ExtractionUseCase, log *logger.Logger) *AIHandler {
	return &AIHandler{uc: uc, log: log}
}

// Extract godoc
// @Summary      Extraer datos de una factura con IA
// @Description  model: gemini, groq o claude. Sin clave configurada, en modo desarrollo o ante cualquier
// @Description  fallo del proveedor, responde con datos simulados deterministas por proveedor.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExtractRequest  true  "fileId y model (obligatorios)"
// @Success      200  {object}  dto.ExtractResponse
// @Failure      400  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/invoices/extract [post]
func (h *AIHandler) Extract(c *fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgInvalidJSON))
	}
	data, err := h.uc.Extract(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgExtractRequired))
		}
		return fail(c, h.log, err, msgFileNotFound, msgInternal)
	}
	return c.JSON(dto.ExtractResponse{Success: true, Data: data})
}
