package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// InvoiceHandler maneja el CRUD, la búsqueda y la exportación de facturas.
type InvoiceHandler struct {
	uc     *usecase.InvoiceUseCase
	export *usecase.ExportUseCase
	log    *logger.Logger
}

// NewInvoiceHandler construye el handler. export puede ser nil (sin /export).
func NewInvoiceHandler(uc *usecase.InvoiceUseCase, export *usecase.ExportUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, export: export, log: log}
}

// List godoc
// @Summary      Listar y buscar facturas
// @Description  Búsqueda sin distinguir mayúsculas en proveedor, número y nombre de archivo. Orden: más recientes primero.
// @Tags         invoices
// @Produce      json
// @Param        q      query  string  false  "Texto a buscar"
// @Param        page   query  int     false  "Página (1 por defecto)"
// @Param        limit  query  int     false  "Tamaño de página (10 por defecto, máx. 100)"
// @Success      200  {object}  dto.APIResponse{data=dto.InvoiceListResponse}
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	req := dto.InvoiceSearchRequest{
		Query: c.Query("q"),
		PageRequest: dto.PageRequest{
			Page:  c.QueryInt("page", dto.DefaultPage),
			Limit: c.QueryInt("limit", dto.DefaultLimit),
		},
	}
	res, err := h.uc.List(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err, msgInvoiceNotFound, msgInternal)
	}
	return c.JSON(dto.OK(res))
}

// Export godoc
// @Summary      Exportar facturas a Excel
// @Tags         invoices
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        q  query  string  false  "Texto a buscar"
// @Success      200
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/invoices/export [get]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.UserContext(), c.Query("q"))
	if err != nil {
		return fail(c, h.log, err, msgInvoiceNotFound, msgInternal)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Data)
}

// GetByID godoc
// @Summary      Obtener una factura
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.APIResponse{data=entity.Invoice}
// @Failure      404  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err, msgInvoiceNotFound, msgInternal)
	}
	return c.JSON(dto.OK(inv))
}

// Create godoc
// @Summary      Crear una factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201  {object}  dto.APIResponse{data=entity.Invoice}
// @Failure      400  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgInvalidJSON))
	}
	inv, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err, msgInvoiceNotFound, msgInternal)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(inv))
}

// Update godoc
// @Summary      Actualizar una factura
// @Description  Reemplaza los campos de primer nivel presentes en el cuerpo (fileId, fileName, vendor, invoice).
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "Campos a reemplazar"
// @Success      200  {object}  dto.APIResponse{data=entity.Invoice}
// @Failure      400  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgInvalidJSON))
	}
	inv, err := h.uc.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fail(c, h.log, err, msgInvoiceNotFound, msgInternal)
	}
	return c.JSON(dto.OK(inv))
}

// Delete godoc
// @Summary      Borrar una factura y su PDF
// @Description  El PDF se borra en un segundo paso best-effort; si falla, la respuesta sigue siendo exitosa.
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, h.log, err, msgInvoiceNotFound, msgInternal)
	}
	return c.JSON(dto.Done("Invoice deleted successfully"))
}
