package memory

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

func TestFileStore_Ciclo(t *testing.T) {
	s := NewFileStore()
	ctx := context.Background()
	payload := []byte("%PDF-1.4 contenido")

	id, err := s.Upload(ctx, "f.pdf", entity.FileMetadata{ContentType: entity.PDFContentType, Size: int64(len(payload))}, bytes.NewReader(payload))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	info, err := s.Stat(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "f.pdf", info.Name)
	assert.EqualValues(t, len(payload), info.Length)
	assert.Equal(t, entity.PDFContentType, info.Metadata.ContentType)
	assert.False(t, info.UploadDate.IsZero())

	rc, err := s.Open(ctx, id)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, payload, got)

	files, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Stat(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Open(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), domain.ErrNotFound)
}

func TestFileStore_Backdate(t *testing.T) {
	s := NewFileStore()
	ctx := context.Background()
	id, err := s.Upload(ctx, "a.pdf", entity.FileMetadata{}, bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour).UTC()
	s.Backdate(id, old)

	info, err := s.Stat(ctx, id)
	require.NoError(t, err)
	assert.True(t, old.Equal(info.UploadDate))
}
