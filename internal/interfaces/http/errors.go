package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// Mensajes visibles para el cliente. Los 500 son genéricos: el detalle solo va al log.
const (
	msgInternal        = "Internal server error"
	msgInvalidJSON     = "Invalid JSON body"
	msgNoFile          = "No PDF file provided"
	msgOnlyPDF         = "Only PDF files are allowed"
	msgFileTooLarge    = "File too large"
	msgFileNotFound    = "File not found"
	msgInvoiceNotFound = "Invoice not found"
	msgExtractRequired = "fileId and model are required"
)

// fail traduce un error de dominio a status + sobre {success:false,error}.
// notFound e internal son los mensajes para 404 y 500 de cada endpoint.
func fail(c *fiber.Ctx, log *logger.Logger, err error, notFound, internal string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(notFound))
	case errors.Is(err, domain.ErrMissingFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgNoFile))
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgOnlyPDF))
	case errors.Is(err, domain.ErrFileTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgFileTooLarge))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	log.Error().Err(err).
		Str("req_id", RequestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(internal))
}

// ErrorHandler convierte errores sueltos y panics recuperados en el sobre estándar.
// Un cuerpo mayor al límite de Fiber se reporta como 400, igual que el límite de carga.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := msgInternal

		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch {
			case fe.Code == fiber.StatusRequestEntityTooLarge:
				code, msg = fiber.StatusBadRequest, msgFileTooLarge
			case fe.Code < fiber.StatusInternalServerError:
				code, msg = fe.Code, fe.Message
			}
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("req_id", RequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
		}
		return c.Status(code).JSON(dto.Fail(msg))
	}
}
