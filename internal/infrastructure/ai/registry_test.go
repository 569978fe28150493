package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/pkg/config"
)

func TestCannedInvoice_Determinista(t *testing.T) {
	a := CannedInvoice(ProviderGemini)
	b := CannedInvoice(ProviderGemini)
	assert.Equal(t, a, b)
	assert.Equal(t, "ACME Corporation", a.Vendor.Name)
	assert.Equal(t, "INV-2024-001", a.Invoice.Number)
	assert.Equal(t, 1085.0, *a.Invoice.Total)
	require.Len(t, a.Invoice.LineItems, 1)
	assert.Equal(t, 1000.0, a.Invoice.LineItems[0].Total)

	// Copias independientes.
	a.Vendor.Name = "mutado"
	assert.Equal(t, "ACME Corporation", CannedInvoice(ProviderGemini).Vendor.Name)

	g := CannedInvoice(ProviderGroq)
	assert.Equal(t, "TechCorp Industries", g.Vendor.Name)
	assert.Equal(t, "TC-2024-005", g.Invoice.Number)
	assert.Equal(t, 2750.0, *g.Invoice.Total)

	c := CannedInvoice(ProviderClaude)
	assert.Equal(t, "Northwind Supplies", c.Vendor.Name)
	assert.Equal(t, "NW-2024-010", c.Invoice.Number)
}

func TestRegistry_SinClavesDevuelveSimulado(t *testing.T) {
	r := NewRegistry(config.AIConfig{}, false)
	for _, name := range Providers() {
		primary, fallback := r.Resolve(name)
		_, isMock := primary.(*MockService)
		assert.True(t, isMock, name)
		got, err := primary.ExtractInvoice(context.Background(), "x")
		require.NoError(t, err)
		want, _ := fallback.ExtractInvoice(context.Background(), "x")
		assert.Equal(t, want, got)
	}
}

func TestRegistry_ConClaves(t *testing.T) {
	cfg := config.AIConfig{
		GeminiAPIKey: "g", GeminiModel: "gemini-pro",
		GroqAPIKey: "q", GroqModel: "mixtral-8x7b-32768",
		AnthropicAPIKey: "a", AnthropicModel: "claude-3-5-haiku-20241022",
	}
	r := NewRegistry(cfg, false)

	p, _ := r.Resolve("gemini")
	assert.IsType(t, &GeminiService{}, p)
	p, _ = r.Resolve(" GROQ ")
	assert.IsType(t, &GroqService{}, p)
	p, _ = r.Resolve("claude")
	assert.IsType(t, &AnthropicService{}, p)
}

func TestRegistry_ModoDesarrollo(t *testing.T) {
	r := NewRegistry(config.AIConfig{GeminiAPIKey: "g"}, true)
	p, _ := r.Resolve("gemini")
	assert.IsType(t, &MockService{}, p)
}

func TestRegistry_NombreDesconocido(t *testing.T) {
	r := NewRegistry(config.AIConfig{GeminiAPIKey: "g"}, false)
	p, fallback := r.Resolve("llama")
	assert.IsType(t, &MockService{}, p)
	got, err := fallback.ExtractInvoice(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ACME Corporation", got.Vendor.Name)
}
