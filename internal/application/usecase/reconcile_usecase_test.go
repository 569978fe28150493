package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func TestReconcileUseCase_Run(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceStore()
	files := memory.NewFileStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	upload := func(name string, age time.Duration) string {
		id, err := files.Upload(ctx, name, entity.FileMetadata{}, bytes.NewReader([]byte("%PDF")))
		require.NoError(t, err)
		files.Backdate(id, now.Add(-age))
		return id
	}
	referenced := upload("ref.pdf", 48*time.Hour)
	orphan := upload("huerfano.pdf", 48*time.Hour)
	recent := upload("reciente.pdf", 5*time.Minute)

	_, err := repo.Insert(ctx, &entity.Invoice{FileID: referenced})
	require.NoError(t, err)

	uc := NewReconcileUseCase(repo, files, logger.Nop())
	uc.now = func() time.Time { return now }

	// Caso 1: dry-run no borra.
	rep, err := uc.Run(ctx, ReconcileOptions{Grace: time.Hour, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, &dto.ReconcileReport{Scanned: 3, Referenced: 1, TooRecent: 1, Orphans: []string{orphan}, DryRun: true}, rep)
	_, err = files.Stat(ctx, orphan)
	require.NoError(t, err)

	// Caso 2: borra solo el huérfano antiguo.
	rep, err = uc.Run(ctx, ReconcileOptions{Grace: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Deleted)
	_, err = files.Stat(ctx, orphan)
	assert.Error(t, err)
	_, err = files.Stat(ctx, recent)
	assert.NoError(t, err)
	_, err = files.Stat(ctx, referenced)
	assert.NoError(t, err)
}

func TestReconcileUseCase_FalloBorrado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceStore()
	mem := memory.NewFileStore()
	id, err := mem.Upload(ctx, "x.pdf", entity.FileMetadata{}, bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	mem.Backdate(id, time.Now().Add(-72*time.Hour))

	uc := NewReconcileUseCase(repo, &failingDeleteStore{FileStore: mem}, logger.Nop())
	rep, err := uc.Run(ctx, ReconcileOptions{Grace: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, []string{id}, rep.Failed)
	assert.Equal(t, 0, rep.Deleted)
}
