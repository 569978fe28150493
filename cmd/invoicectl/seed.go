package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	infrapdf "github.com/jhoicas/invoice-manager/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-manager/pkg/apiclient"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func seedAction(c *cli.Context) error {
	count := c.Int("count")
	if count <= 0 {
		return cli.Exit("--count debe ser positivo", 2)
	}
	client := apiclient.New(c.String("api"))
	ids, err := seed(c.Context, client, infrapdf.NewMarotoPDFGenerator(), count, time.Now().UTC(), newLogger(c))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d facturas creadas\n", len(ids))
	return nil
}

// seed genera count facturas de muestra: PDF (maroto) → upload → registro.
// Devuelve los ids creados; se detiene en el primer error.
func seed(ctx context.Context, client *apiclient.Client, gen *infrapdf.MarotoPDFGenerator, count int, base time.Time, log *logger.Logger) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		sample := infrapdf.SampleInvoice(i, base.AddDate(0, 0, -i))
		data, err := gen.GenerateInvoicePDF(ctx, sample)
		if err != nil {
			return ids, fmt.Errorf("generar PDF %d: %w", i, err)
		}

		name := fmt.Sprintf("%s.pdf", sample.Invoice.Number)
		up, err := client.UploadPDF(ctx, name, bytes.NewReader(data))
		if err != nil {
			return ids, fmt.Errorf("subir %s: %w", name, err)
		}

		inv, err := client.CreateInvoice(ctx, dto.CreateInvoiceRequest{
			FileID:   up.FileID,
			FileName: up.FileName,
			Vendor:   sample.Vendor,
			Invoice:  sample.Invoice,
		})
		if err != nil {
			return ids, fmt.Errorf("crear factura %s: %w", name, err)
		}
		log.Info().Str("invoice_id", inv.ID).Str("file_id", up.FileID).Str("number", sample.Invoice.Number).Msg("factura de muestra creada")
		ids = append(ids, inv.ID)
	}
	return ids, nil
}

func sampleAction(c *cli.Context) error {
	sample := infrapdf.SampleInvoice(c.Int("index"), time.Now().UTC())
	data, err := infrapdf.NewMarotoPDFGenerator().GenerateInvoicePDF(c.Context, sample)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	fmt.Fprintf(c.App.Writer, "%s (%d bytes, factura %s)\n", out, len(data), sample.Invoice.Number)
	return nil
}
