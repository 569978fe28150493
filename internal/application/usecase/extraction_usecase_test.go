package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func TestExtractionUseCase_Validacion(t *testing.T) {
	uc := NewExtractionUseCase(&stubResolver{}, logger.Nop())

	_, err := uc.Extract(context.Background(), dto.ExtractRequest{Model: "gemini"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Extract(context.Background(), dto.ExtractRequest{FileID: "f"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractionUseCase_Exito(t *testing.T) {
	want := &dto.ExtractedInvoice{Vendor: entity.Vendor{Name: "Real"}}
	primary := &stubExtractor{name: "gemini", result: want}
	fallback := &stubExtractor{name: "gemini", result: &dto.ExtractedInvoice{Vendor: entity.Vendor{Name: "Simulado"}}}
	res := &stubResolver{primary: primary, fallback: fallback}
	uc := NewExtractionUseCase(res, logger.Nop())

	got, err := uc.Extract(context.Background(), dto.ExtractRequest{FileID: "f", Model: "gemini"})
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, "gemini", res.asked)
	assert.Equal(t, 0, fallback.calls)
}

func TestExtractionUseCase_FalloUsaSimulado(t *testing.T) {
	primary := &stubExtractor{name: "groq", err: errors.New("HTTP 500")}
	canned := &dto.ExtractedInvoice{Vendor: entity.Vendor{Name: "TechCorp Industries"}}
	fallback := &stubExtractor{name: "groq", result: canned}
	uc := NewExtractionUseCase(&stubResolver{primary: primary, fallback: fallback}, logger.Nop())

	for i := 0; i < 3; i++ {
		got, err := uc.Extract(context.Background(), dto.ExtractRequest{FileID: "f", Model: "groq"})
		require.NoError(t, err)
		assert.Equal(t, "TechCorp Industries", got.Vendor.Name)
	}
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 3, fallback.calls)
}
