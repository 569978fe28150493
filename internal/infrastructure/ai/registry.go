package ai

import (
	"strings"

	"github.com/jhoicas/invoice-manager/internal/application/ports"
	"github.com/jhoicas/invoice-manager/pkg/config"
)

var _ ports.ExtractorResolver = (*Registry)(nil)

// Registry resuelve proveedores por nombre. Sin credenciales, o en modo desarrollo,
// el proveedor resuelto es el simulado.
type Registry struct {
	live map[string]ports.InvoiceExtractor
}

// NewRegistry registra los proveedores reales que tengan clave. Con mockOnly no registra ninguno.
func NewRegistry(cfg config.AIConfig, mockOnly bool) *Registry {
	r := &Registry{live: make(map[string]ports.InvoiceExtractor)}
	if mockOnly {
		return r
	}
	if cfg.GeminiAPIKey != "" {
		r.Register(NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel))
	}
	if cfg.GroqAPIKey != "" {
		r.Register(NewGroqService(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL))
	}
	if cfg.AnthropicAPIKey != "" {
		r.Register(NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel))
	}
	return r
}

// Register añade (o reemplaza) un proveedor real bajo su Name().
func (r *Registry) Register(p ports.InvoiceExtractor) {
	r.live[strings.ToLower(p.Name())] = p
}

// Resolve devuelve el proveedor a usar y el simulado de respaldo para ese nombre.
// Un nombre desconocido resuelve a los datos simulados de gemini.
func (r *Registry) Resolve(name string) (ports.InvoiceExtractor, ports.InvoiceExtractor) {
	key := strings.ToLower(strings.TrimSpace(name))
	fallback := NewMockService(key)
	if p, ok := r.live[key]; ok {
		return p, fallback
	}
	return fallback, fallback
}

// Providers nombres seleccionables, en orden de presentación.
func Providers() []string {
	return []string{ProviderGemini, ProviderGroq, ProviderClaude}
}
