package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// ReconcileOptions parámetros de la conciliación.
type ReconcileOptions struct {
	// Grace ignora archivos más nuevos: la carga precede a la creación del registro.
	Grace  time.Duration
	DryRun bool
}

// ReconcileUseCase busca PDFs que ninguna factura referencia y los borra.
// Compensa el borrado no atómico registro → archivo.
type ReconcileUseCase struct {
	invoices repository.InvoiceRepository
	files    repository.FileStore
	log      *logger.Logger
	now      func() time.Time
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(invoices repository.InvoiceRepository, files repository.FileStore, log *logger.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{invoices: invoices, files: files, log: log.Named("reconcile"), now: time.Now}
}

// Run recorre el almacén de archivos y borra (o solo informa, con DryRun) los huérfanos.
func (uc *ReconcileUseCase) Run(ctx context.Context, opts ReconcileOptions) (*dto.ReconcileReport, error) {
	refs, err := uc.invoices.ReferencedFileIDs(ctx)
	if err != nil {
		return nil, err
	}
	files, err := uc.files.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := uc.now().Add(-opts.Grace)
	report := &dto.ReconcileReport{Scanned: len(files), DryRun: opts.DryRun, Orphans: []string{}}
	for _, f := range files {
		if _, ok := refs[f.ID]; ok {
			report.Referenced++
			continue
		}
		if f.UploadDate.After(cutoff) {
			report.TooRecent++
			continue
		}
		report.Orphans = append(report.Orphans, f.ID)
		if opts.DryRun {
			continue
		}
		if err := uc.files.Delete(ctx, f.ID); err != nil {
			uc.log.Warn().Err(err).Str("file_id", f.ID).Msg("no se pudo borrar el PDF huérfano")
			report.Failed = append(report.Failed, f.ID)
			continue
		}
		report.Deleted++
	}

	uc.log.Info().
		Int("scanned", report.Scanned).
		Int("orphans", len(report.Orphans)).
		Int("deleted", report.Deleted).
		Bool("dry_run", opts.DryRun).
		Msg("conciliación terminada")
	return report, nil
}
