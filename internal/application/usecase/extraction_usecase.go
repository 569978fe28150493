package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/ports"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// PlaceholderText texto que se envía a los proveedores. El PDF no se convierte a texto.
const PlaceholderText = "ACME Corporation Invoice #INV-2024-001 Date: 2024-01-15 Total: $1,085.00"

// ExtractionUseCase orquesta la extracción asistida por IA con degradación a datos simulados.
type ExtractionUseCase struct {
	resolver ports.ExtractorResolver
	log      *logger.Logger
}

// NewExtractionUseCase construye el caso de uso inyectando el resolvedor de proveedores.
func NewExtractionUseCase(resolver ports.ExtractorResolver, log *logger.Logger) *ExtractionUseCase {
	return &ExtractionUseCase{resolver: resolver, log: log.Named("extraction")}
}

// Extract valida la entrada y delega en el proveedor pedido.
// Cualquier fallo del proveedor se registra y se responde con los datos simulados.
func (uc *ExtractionUseCase) Extract(ctx context.Context, req dto.ExtractRequest) (*dto.ExtractedInvoice, error) {
	if req.FileID == "" || req.Model == "" {
		return nil, fmt.Errorf("fileId y model son obligatorios: %w", domain.ErrInvalidInput)
	}
	return uc.ExtractText(ctx, req.Model, PlaceholderText), nil
}

// ExtractText ejecuta la extracción sobre un texto arbitrario. Nunca falla.
func (uc *ExtractionUseCase) ExtractText(ctx context.Context, provider, text string) *dto.ExtractedInvoice {
	reqID := uuid.New().String()
	primary, fallback := uc.resolver.Resolve(provider)

	result, err := primary.ExtractInvoice(ctx, text)
	if err == nil && result != nil {
		uc.log.Info().Str("req_id", reqID).Str("provider", primary.Name()).Msg("extracción completada")
		return result
	}

	uc.log.Warn().Err(err).Str("req_id", reqID).Str("provider", provider).Msg("extracción fallida, se usan datos simulados")
	result, _ = fallback.ExtractInvoice(ctx, text)
	return result
}
