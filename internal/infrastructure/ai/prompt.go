package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

// maxPromptRunes prefijo del texto que se envía al modelo.
const maxPromptRunes = 2000

// extractionPrompt plantilla fija; %s es el texto truncado.
const extractionPrompt = `Extract invoice data from this text and return ONLY a valid JSON object (no markdown, no extra text) with this exact structure:
{
  "vendor": {"name": "<string>", "address": "<string>", "taxId": "<string>"},
  "invoice": {
    "number": "<string>",
    "date": "<YYYY-MM-DD>",
    "currency": "<ISO 4217 code>",
    "subtotal": <number>,
    "taxPercent": <number>,
    "total": <number>,
    "poNumber": "<string>",
    "poDate": "<YYYY-MM-DD>",
    "lineItems": [{"description": "<string>", "unitPrice": <number>, "quantity": <number>, "total": <number>}]
  }
}
Omit fields that are not present in the text.

Text:
%s`

// buildPrompt inserta los primeros 2000 caracteres del texto en la plantilla.
func buildPrompt(text string) string {
	return fmt.Sprintf(extractionPrompt, truncateRunes(text, maxPromptRunes))
}

// truncateRunes corta por caracteres, no por bytes, para no partir UTF-8.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Capturar con regex el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// invoiceSchema estructura mínima que debe cumplir la respuesta del modelo.
// Solo vendor.name e invoice.number son obligatorios; los demás pueden faltar.
const invoiceSchema = `{
  "type": "object",
  "required": ["vendor", "invoice"],
  "properties": {
    "vendor": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "address": {"type": ["string", "null"]},
        "taxId": {"type": ["string", "null"]}
      }
    },
    "invoice": {
      "type": "object",
      "required": ["number"],
      "properties": {
        "number": {"type": "string"},
        "date": {"type": ["string", "null"]},
        "currency": {"type": ["string", "null"]},
        "subtotal": {"type": ["number", "null"]},
        "taxPercent": {"type": ["number", "null"]},
        "total": {"type": ["number", "null"]},
        "poNumber": {"type": ["string", "null"]},
        "poDate": {"type": ["string", "null"]},
        "lineItems": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "properties": {
              "description": {"type": "string"},
              "unitPrice": {"type": "number"},
              "quantity": {"type": "number"},
              "total": {"type": "number"}
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = mustCompileSchema(invoiceSchema)

func mustCompileSchema(src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("invoice.json", strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("ai: schema inválido: %v", err))
	}
	return compiler.MustCompile("invoice.json")
}

// sanitizer elimina cualquier marcado HTML que el modelo haya colado en los textos.
var sanitizer = bluemonday.StrictPolicy()

// parseExtracted limpia, valida contra el schema y decodifica la respuesta del modelo.
func parseExtracted(raw string) (*dto.ExtractedInvoice, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo")
	}

	var generic any
	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w", err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("AI: JSON no cumple el schema: %w", err)
	}

	var out dto.ExtractedInvoice
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("AI: decodificar factura: %w", err)
	}
	sanitize(&out)
	if out.Invoice.LineItems == nil {
		out.Invoice.LineItems = []entity.LineItem{}
	}
	return &out, nil
}

func sanitize(x *dto.ExtractedInvoice) {
	x.Vendor.Name = scrub(x.Vendor.Name)
	x.Vendor.Address = scrubPtr(x.Vendor.Address)
	x.Vendor.TaxID = scrubPtr(x.Vendor.TaxID)
	x.Invoice.Number = scrub(x.Invoice.Number)
	x.Invoice.Date = scrub(x.Invoice.Date)
	x.Invoice.Currency = scrubPtr(x.Invoice.Currency)
	x.Invoice.PONumber = scrubPtr(x.Invoice.PONumber)
	x.Invoice.PODate = scrubPtr(x.Invoice.PODate)
	for i := range x.Invoice.LineItems {
		x.Invoice.LineItems[i].Description = scrub(x.Invoice.LineItems[i].Description)
	}
}

func scrub(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

func scrubPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := scrub(*p)
	return &v
}
