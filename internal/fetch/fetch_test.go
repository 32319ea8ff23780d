// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tacred-tools/pkg/types"
)

func TestPartitionFiles(t *testing.T) {
	files, err := PartitionFiles(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"train.conll", "dev.conll", "test.conll"}, files)

	files, err = PartitionFiles([]types.Partition{types.PartitionDev})
	require.NoError(t, err)
	assert.Equal(t, []string{"dev.conll"}, files)

	_, err = PartitionFiles([]types.Partition{"validation"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"validation"`)
}

func TestFetchFile(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/corpus/dev.conll":
			w.Write([]byte("# id=a docid=D reln=no_relation\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	tmpDir := t.TempDir()
	cfg := types.FetchConfig{
		BaseURL:   ts.URL + "/corpus",
		CorpusDir: tmpDir,
	}
	cfg.UserAgent = "tacred-tools/test"

	var log bytes.Buffer
	skipped, err := FetchFile(context.Background(), ts.Client(), "dev.conll", cfg, "tok42", &log)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, "Bearer tok42", gotAuth)
	assert.Contains(t, log.String(), "downloading: dev.conll")

	data, err := os.ReadFile(filepath.Join(tmpDir, rawDir, "dev.conll"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# id=a")

	// No leftover temp files.
	entries, err := os.ReadDir(filepath.Join(tmpDir, rawDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Second fetch skips the existing file.
	log.Reset()
	skipped, err = FetchFile(context.Background(), ts.Client(), "dev.conll", cfg, "tok42", &log)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Contains(t, log.String(), "skipped: dev.conll")
}

func TestFetchFileHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	tmpDir := t.TempDir()
	cfg := types.FetchConfig{BaseURL: ts.URL, CorpusDir: tmpDir}

	var log bytes.Buffer
	_, err := FetchFile(context.Background(), ts.Client(), "train.conll", cfg, "", &log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")

	// Nothing written on failure.
	_, statErr := os.Stat(filepath.Join(tmpDir, rawDir, "train.conll"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchBatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.conll") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("data"))
	}))
	defer ts.Close()

	tmpDir := t.TempDir()
	cfg := types.FetchConfig{BaseURL: ts.URL, CorpusDir: tmpDir}

	// Pre-create one file to trigger a skip.
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, rawDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, rawDir, "dev.conll"), []byte("existing"), 0o644))

	var log bytes.Buffer
	result := FetchBatch(context.Background(), ts.Client(),
		[]string{"train.conll", "dev.conll", "missing.conll"}, cfg, "", &log)

	assert.Equal(t, 1, result.Downloaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	assert.Contains(t, log.String(), "Batch summary: 1 downloaded, 1 skipped, 1 failed (total: 3)")
}
