package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

func TestExportUseCase_Export(t *testing.T) {
	invUC, _, _ := newInvoiceUC(t)
	ctx := context.Background()
	for _, n := range []string{"ACME", "Globex", "acme labs"} {
		_, err := invUC.Create(ctx, dto.CreateInvoiceRequest{Vendor: entity.Vendor{Name: n}})
		require.NoError(t, err)
	}
	exp := &stubExporter{}
	uc := NewExportUseCase(invUC, exp)

	file, err := uc.Export(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, exp.got, 2)
	assert.Equal(t, []byte("ok"), file.Data)
	assert.Equal(t, "text/plain", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Name, "invoices-"))
	assert.True(t, strings.HasSuffix(file.Name, ".txt"))
}
