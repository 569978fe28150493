package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "ñá", truncateRunes("ñáé", 2), "corta por caracteres, no por bytes")
	assert.Equal(t, "", truncateRunes("abc", 0))
}

func TestBuildPrompt_TruncaA2000(t *testing.T) {
	long := strings.Repeat("x", 2500) + "FIN"
	p := buildPrompt(long)
	assert.Contains(t, p, strings.Repeat("x", 2000))
	assert.NotContains(t, p, strings.Repeat("x", 2001))
	assert.NotContains(t, p, "FIN")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"puro", `{"a":1}`, `{"a":1}`},
		{"markdown json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"markdown sin lenguaje", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"texto alrededor", `Aquí está: {"a":1} listo`, `{"a":1}`},
		{"sin json", "no hay nada", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestParseExtracted_Valido(t *testing.T) {
	raw := "```json\n" + `{
	  "vendor": {"name": "<b>Globex</b> & Sons", "address": "1 Main St"},
	  "invoice": {"number": "G-9", "date": "2024-03-01", "total": 42.5,
	    "lineItems": [{"description": "<script>x</script>Widget", "unitPrice": 2.5, "quantity": 17, "total": 42.5}]}
	}` + "\n```"

	got, err := parseExtracted(raw)
	require.NoError(t, err)
	assert.Equal(t, "Globex & Sons", got.Vendor.Name)
	require.NotNil(t, got.Vendor.Address)
	assert.Equal(t, "1 Main St", *got.Vendor.Address)
	assert.Nil(t, got.Vendor.TaxID)
	assert.Equal(t, "G-9", got.Invoice.Number)
	require.NotNil(t, got.Invoice.Total)
	assert.Equal(t, 42.5, *got.Invoice.Total)
	require.Len(t, got.Invoice.LineItems, 1)
	assert.Equal(t, "Widget", got.Invoice.LineItems[0].Description)
}

func TestParseExtracted_Errores(t *testing.T) {
	// Caso 1: no hay JSON.
	_, err := parseExtracted("lo siento, no puedo")
	assert.Error(t, err)

	// Caso 2: JSON roto.
	_, err = parseExtracted(`{"vendor": {`)
	assert.Error(t, err)

	// Caso 3: no cumple el schema (falta invoice).
	_, err = parseExtracted(`{"vendor": {"name": "A"}}`)
	assert.Error(t, err)

	// Caso 4: tipo incorrecto.
	_, err = parseExtracted(`{"vendor": {"name": "A"}, "invoice": {"number": "1", "total": "mil"}}`)
	assert.Error(t, err)
}

func TestParseExtracted_LineItemsVacio(t *testing.T) {
	got, err := parseExtracted(`{"vendor": {"name": "A"}, "invoice": {"number": "1"}}`)
	require.NoError(t, err)
	assert.NotNil(t, got.Invoice.LineItems)
	assert.Empty(t, got.Invoice.LineItems)
}
