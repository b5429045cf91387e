package filestorage

import (
	"context"
	"testing"

	"talentflow-backend/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNotConfigured(t *testing.T) {
	storage := NewInstance(nil, "talentflow")
	err := storage.UploadFile(context.Background(), "a.pdf", []byte("pdf"), "application/pdf")
	require.True(t, errors.Is(err, models.ErrNotConfigured))
	_, err = storage.GetFile(context.Background(), "a.pdf")
	require.True(t, errors.Is(err, models.ErrNotConfigured))
	require.True(t, errors.Is(storage.MakeBucket(context.Background()), models.ErrNotConfigured))
}
