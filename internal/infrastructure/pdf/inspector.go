package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jhoicas/invoice-manager/internal/application/ports"
)

var _ ports.PDFInspector = (*Inspector)(nil)

// Inspector lee la estructura del PDF con pdfcpu para obtener el número de páginas.
type Inspector struct {
	conf *model.Configuration
}

// NewInspector construye el inspector en modo de validación relajada.
func NewInspector() *Inspector {
	// Sin directorio de configuración en disco (contenedores de solo lectura).
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Inspector{conf: conf}
}

// PageCount devuelve el número de páginas del documento.
func (i *Inspector) PageCount(rs io.ReadSeeker) (int, error) {
	n, err := api.PageCount(rs, i.conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu page count: %w", err)
	}
	return n, nil
}
