// Package web sirve el cliente web: listado y búsqueda, carga de PDFs y editor de facturas.
// Todas las operaciones pasan por la API HTTP; el estado del editor vive en la página.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/ai"
	"github.com/jhoicas/invoice-manager/pkg/apiclient"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// API operaciones de la API que usa el cliente web (implementada por *apiclient.Client).
type API interface {
	UploadPDF(ctx context.Context, name string, r io.Reader) (*dto.UploadResponse, error)
	ListInvoices(ctx context.Context, query string, page, limit int) (*dto.InvoiceListResponse, error)
	GetInvoice(ctx context.Context, id string) (*entity.Invoice, error)
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*entity.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*entity.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	Extract(ctx context.Context, fileID, model string) (*dto.ExtractedInvoice, error)
}

var _ API = (*apiclient.Client)(nil)

// PageSize tamaño de página del listado.
const PageSize = 10

// UnknownVendor nombre del proveedor en el registro inicial tras una carga.
const UnknownVendor = "Unknown Vendor"

// Acciones del formulario del editor.
const (
	ActionSave       = "save"
	ActionExtract    = "extract"
	ActionAddItem    = "add-item"
	ActionRemoveItem = "remove-item"
	ActionRecompute  = "recompute"
)

// Providers opciones del selector de IA.
var Providers = ai.Providers()

// Handler maneja las páginas del cliente web.
type Handler struct {
	api          API
	publicAPIURL string
	maxBytes     int64
	log          *logger.Logger
	now          func() time.Time
}

// NewHandler construye el handler. publicAPIURL es la base visible desde el navegador.
func NewHandler(api API, publicAPIURL string, maxBytes int64, log *logger.Logger) *Handler {
	return &Handler{
		api:          api,
		publicAPIURL: strings.TrimRight(publicAPIURL, "/"),
		maxBytes:     maxBytes,
		log:          log,
		now:          time.Now,
	}
}

// ── Modelos de vista ──────────────────────────────────────────────────────────

type basePage struct {
	Title string
	// Alert se muestra con alert() al cargar la página.
	Alert string
}

type listPage struct {
	basePage
	Query      string
	Invoices   []*entity.Invoice
	Pagination dto.Pagination
	PrevURL    string
	NextURL    string
}

type uploadPage struct {
	basePage
	MaxBytes int64
	MaxMiB   int64
}

type editPage struct {
	basePage
	Buffer    *EditBuffer
	PDFURL    string
	Providers []string
	Selected  string
}

// ── Páginas ───────────────────────────────────────────────────────────────────

// Home GET /
func (h *Handler) Home(c *fiber.Ctx) error {
	return c.Render("home", basePage{Title: "Invoice Manager"})
}

// List GET /invoices?q=&page=
func (h *Handler) List(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	data := listPage{basePage: basePage{Title: "Invoices"}, Query: q}
	res, err := h.api.ListInvoices(c.UserContext(), q, page, PageSize)
	if err != nil {
		h.log.Warn().Err(err).Msg("listar facturas")
		data.Alert = "Failed to load invoices: " + errorMessage(err)
		return c.Render("list", data)
	}

	data.Invoices = res.Invoices
	data.Pagination = res.Pagination
	if page > 1 {
		data.PrevURL = listURL(q, page-1)
	}
	if int64(page) < res.Pagination.Pages {
		data.NextURL = listURL(q, page+1)
	}
	return c.Render("list", data)
}

// UploadForm GET /invoices/upload
func (h *Handler) UploadForm(c *fiber.Ctx) error {
	return c.Render("upload", h.uploadPage(""))
}

// Upload POST /invoices/upload: sube el PDF, crea el registro inicial y abre el editor.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("upload", h.uploadPage("Please select a PDF file"))
	}
	if !usecase.IsPDFContentType(fh.Header.Get(fiber.HeaderContentType)) {
		return c.Status(fiber.StatusBadRequest).Render("upload", h.uploadPage("Only PDF files are allowed"))
	}
	if fh.Size > h.maxBytes {
		return c.Status(fiber.StatusBadRequest).Render("upload", h.uploadPage(
			fmt.Sprintf("File too large (max %d MiB)", h.maxBytes>>20)))
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := c.UserContext()
	up, err := h.api.UploadPDF(ctx, fh.Filename, f)
	if err != nil {
		h.log.Warn().Err(err).Str("file_name", fh.Filename).Msg("subir PDF")
		return c.Status(fiber.StatusBadGateway).Render("upload", h.uploadPage("Upload failed: "+errorMessage(err)))
	}

	inv, err := h.api.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		FileID:   up.FileID,
		FileName: up.FileName,
		Vendor:   entity.Vendor{Name: UnknownVendor},
		Invoice: entity.InvoiceDetails{
			Date:      h.now().Format("2006-01-02"),
			LineItems: []entity.LineItem{},
		},
	})
	if err != nil {
		h.log.Warn().Err(err).Str("file_id", up.FileID).Msg("crear registro inicial")
		return c.Status(fiber.StatusBadGateway).Render("upload", h.uploadPage("Failed to create invoice: "+errorMessage(err)))
	}
	return c.Redirect("/invoices/"+url.PathEscape(inv.ID), fiber.StatusSeeOther)
}

// Edit GET /invoices/:id
func (h *Handler) Edit(c *fiber.Ctx) error {
	inv, err := h.api.GetInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		if apiclient.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return err
	}
	return c.Render("edit", h.editPage(NewEditBuffer(inv), ""))
}

// EditAction POST /invoices/:id: reconstruye el buffer desde el formulario y aplica la acción.
func (h *Handler) EditAction(c *fiber.Ctx) error {
	buf := BufferFromForm(c)
	buf.ID = c.Params("id")
	ctx := c.UserContext()

	action, arg, _ := strings.Cut(c.FormValue("action", ActionSave), ":")
	switch action {
	case ActionAddItem:
		buf.AddLineItem()
	case ActionRemoveItem:
		i, err := strconv.Atoi(arg)
		if err == nil {
			buf.RemoveLineItem(i)
		}
	case ActionRecompute:
		// BufferFromForm ya recalculó las líneas cuyo precio o cantidad cambió.
	case ActionExtract:
		model := c.FormValue("model")
		x, err := h.api.Extract(ctx, buf.FileID, model)
		if err != nil {
			h.log.Warn().Err(err).Str("provider", model).Msg("extracción")
			return c.Render("edit", h.editPage(buf, "Extraction failed: "+errorMessage(err)))
		}
		buf.ApplyExtraction(x)
		page := h.editPage(buf, "")
		page.Selected = model
		return c.Render("edit", page)
	case ActionSave:
		req, err := buf.ToUpdateRequest()
		if err != nil {
			return c.Render("edit", h.editPage(buf, err.Error()))
		}
		if _, err := h.api.UpdateInvoice(ctx, buf.ID, req); err != nil {
			h.log.Warn().Err(err).Str("invoice_id", buf.ID).Msg("guardar factura")
			return c.Render("edit", h.editPage(buf, "Failed to save invoice: "+errorMessage(err)))
		}
		return c.Redirect("/invoices/"+url.PathEscape(buf.ID), fiber.StatusSeeOther)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown action")
	}
	return c.Render("edit", h.editPage(buf, ""))
}

// Delete POST /invoices/:id/delete
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.api.DeleteInvoice(c.UserContext(), id); err != nil {
		h.log.Warn().Err(err).Str("invoice_id", id).Msg("borrar factura")
		inv, getErr := h.api.GetInvoice(c.UserContext(), id)
		if getErr != nil {
			return c.Redirect("/invoices", fiber.StatusSeeOther)
		}
		return c.Render("edit", h.editPage(NewEditBuffer(inv), "Failed to delete invoice: "+errorMessage(err)))
	}
	return c.Redirect("/invoices", fiber.StatusSeeOther)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *Handler) uploadPage(alert string) uploadPage {
	return uploadPage{
		basePage: basePage{Title: "Upload invoice", Alert: alert},
		MaxBytes: h.maxBytes,
		MaxMiB:   h.maxBytes >> 20,
	}
}

func (h *Handler) editPage(buf *EditBuffer, alert string) editPage {
	return editPage{
		basePage:  basePage{Title: "Invoice " + buf.Number, Alert: alert},
		Buffer:    buf,
		PDFURL:    apiclient.FileURL(h.publicAPIURL, buf.FileID),
		Providers: Providers,
	}
}

func listURL(q string, page int) string {
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	v.Set("page", strconv.Itoa(page))
	return "/invoices?" + v.Encode()
}

func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
