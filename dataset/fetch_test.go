package dataset

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/esimov/facecrop/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	payload := bytes.Repeat([]byte("cat"), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "cats.zip", time.Time{}, bytes.NewReader(payload))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cats.zip")
	path, err := Fetch(context.Background(), srv.URL+"/data/cats.zip", dest, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, dest, path)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetch_ExistingArchive(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cats.zip")
	writeFile(t, dest, []byte("cached"))

	path, err := Fetch(context.Background(), "http://127.0.0.1:1/cats.zip", dest, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, dest, path)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data))
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cats.zip")
	_, err := Fetch(context.Background(), srv.URL+"/cats.zip", dest, logger.Nop())
	assert.Error(t, err)
}
