package dto

// APIResponse sobre estándar de todas las respuestas JSON de la API.
// En error: Success=false y Error con un mensaje corto; no hay códigos estructurados.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK construye una respuesta exitosa con datos.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Done construye una respuesta exitosa solo con mensaje.
func Done(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// Fail construye una respuesta de error.
func Fail(msg string) APIResponse {
	return APIResponse{Success: false, Error: msg}
}

// PageRequest paginación 1-based para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Valores de paginación por defecto.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize aplica valores por defecto si Page/Limit no son positivos y acota Limit.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Skip número de registros a saltar para la página pedida.
func (p PageRequest) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination calcula pages = ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
