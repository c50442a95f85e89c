package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/config"
)

func TestLocalStorageUpload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8190/uploads/", zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Upload(context.Background(), "ABC1234/photo-01.png", strings.NewReader("png"), 3, "image/png"))

	data, err := os.ReadFile(filepath.Join(dir, "ABC1234", "photo-01.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.Equal(t, "http://localhost:8190/uploads/ABC1234/photo-01.png", s.PublicURL("ABC1234/photo-01.png"))

	err = s.Upload(context.Background(), "../escape.png", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBase(&config.Config{S3PublicBaseURL: "https://cdn.example.com/"}, "b"))
	assert.Equal(t, "http://minio:9000/b", publicBase(&config.Config{S3Endpoint: "http://minio:9000"}, "b"))
	assert.Equal(t, "https://b.s3.ap-south-1.amazonaws.com", publicBase(&config.Config{S3Region: "ap-south-1"}, "b"))
}
