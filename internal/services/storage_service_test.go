// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/perfume-store/internal/testutil"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestUploadProductImageLocal(t *testing.T) {
	cfg := testutil.Config(t)
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)

	result, err := storage.UploadProductImage(context.Background(), bytes.NewReader(pngHeader), "Bottle.PNG", int64(len(pngHeader)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "products/"))
	assert.True(t, strings.HasSuffix(result.Key, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/"+result.Key, result.URL)
	assert.Equal(t, int64(len(pngHeader)), result.Size)

	path := filepath.Join(cfg.Storage.LocalDir, filepath.FromSlash(result.Key))
	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	require.NoError(t, storage.DeleteByURL(context.Background(), result.URL))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// foreign URLs are left alone
	assert.NoError(t, storage.DeleteByURL(context.Background(), "https://cdn.example.com/x.png"))
}

func TestUploadProductImageRejectsBadFiles(t *testing.T) {
	storage, err := NewStorageService(testutil.Config(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = storage.UploadProductImage(ctx, bytes.NewReader(pngHeader), "bottle.exe", int64(len(pngHeader)))
	assert.ErrorIs(t, err, ErrInvalidFile)

	text := []byte("definitely not an image")
	_, err = storage.UploadProductImage(ctx, bytes.NewReader(text), "bottle.png", int64(len(text)))
	assert.ErrorIs(t, err, ErrInvalidFile)

	// testutil limits uploads to 1 MB
	_, err = storage.UploadProductImage(ctx, bytes.NewReader(pngHeader), "bottle.png", 2*1024*1024)
	assert.ErrorIs(t, err, ErrInvalidFile)
}
