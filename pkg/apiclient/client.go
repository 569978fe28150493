// Package apiclient es el cliente HTTP de la API de facturas, usado por el cliente web
// y por invoicectl.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

// APIError respuesta no exitosa de la API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound indica si err es un 404 de la API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client cliente de la API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client por defecto.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New construye el cliente. baseURL sin barra final, p.ej. http://localhost:3001.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileURL URL pública de descarga de un PDF.
func FileURL(baseURL, fileID string) string {
	return strings.TrimRight(baseURL, "/") + "/api/files/" + url.PathEscape(fileID)
}

// envelope forma {success,data,error,message} de las respuestas JSON.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// UploadPDF sube un PDF como parte multipart "pdf".
func (c *Client) UploadPDF(ctx context.Context, name string, r io.Reader) (*dto.UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf"; filename="%s"`, strings.ReplaceAll(name, `"`, "")))
	h.Set("Content-Type", entity.PDFContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("apiclient: multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("apiclient: copiar archivo: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("apiclient: multipart: %w", err)
	}

	var out dto.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/files/upload", w.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFile borra un PDF.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+url.PathEscape(fileID), "", nil, nil)
}

// ListInvoices busca y pagina facturas. page/limit <= 0 usan los valores por defecto.
func (c *Client) ListInvoices(ctx context.Context, query string, page, limit int) (*dto.InvoiceListResponse, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/invoices"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out dto.InvoiceListResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvoice obtiene una factura.
func (c *Client) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	var out entity.Invoice
	if err := c.do(ctx, http.MethodGet, "/api/invoices/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInvoice crea una factura.
func (c *Client) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	var out entity.Invoice
	if err := c.doJSON(ctx, http.MethodPost, "/api/invoices", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInvoice reemplaza los campos de primer nivel presentes en req.
func (c *Client) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*entity.Invoice, error) {
	var out entity.Invoice
	if err := c.doJSON(ctx, http.MethodPut, "/api/invoices/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInvoice borra una factura y su PDF.
func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/invoices/"+url.PathEscape(id), "", nil, nil)
}

// Extract pide la extracción IA con el proveedor indicado.
func (c *Client) Extract(ctx context.Context, fileID, model string) (*dto.ExtractedInvoice, error) {
	var out dto.ExtractedInvoice
	if err := c.doJSON(ctx, http.MethodPost, "/api/invoices/extract", dto.ExtractRequest{FileID: fileID, Model: model}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("apiclient: serializar: %w", err)
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(raw), out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("apiclient: decodificar respuesta: %w", err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("apiclient: decodificar data: %w", err)
	}
	return nil
}
