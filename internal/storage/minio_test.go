package storage

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"testing"

	"github.com/apiscamp/apiscamp/go-services/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

func TestNewMinIOStorage_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{})
	require.Error(t, err)
}

func TestMapNotFound(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound, Message: "The specified key does not exist."}
	err := mapNotFound("style.css", missing)
	require.True(t, errors.Is(err, fs.ErrNotExist))
	require.Contains(t, err.Error(), "style.css")

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	err = mapNotFound("style.css", denied)
	require.False(t, errors.Is(err, fs.ErrNotExist))
}

func TestContentType(t *testing.T) {
	require.Contains(t, contentType("css/style.css"), "text/css")
	require.Equal(t, "application/octet-stream", contentType("blob"))
}
