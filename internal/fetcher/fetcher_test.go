package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itac-tools/reportrecon/internal/config"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"http://example.com/report.docx", true},
		{"https://example.com/report.docx", true},
		{"ftp://example.com/report.docx", true},
		{"report.docx", false},
		{"/abs/path/report.docx", false},
		{"C:\\reports\\report.docx", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRemote(tt.input), tt.input)
	}
}

func TestHTTPDownloadToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "reportrecon/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte("workbook bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	dest := filepath.Join(t.TempDir(), "workbook.xlsx")

	n, err := f.DownloadToFile(context.Background(), srv.URL+"/workbook.xlsx", dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len("workbook bytes")), n)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(data))
}

func TestHTTPRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{MaxRetries: 3, Timeout: 5 * time.Second})
	body, err := f.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestHTTPNotFoundIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPOptions{})
	_, err := f.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetchToDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("doc"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := config.FetchConfig{TimeoutSecs: 5, MaxRetries: 2, UserAgent: "reportrecon/1.0"}

	local, err := FetchToDir(context.Background(), cfg, srv.URL+"/deep/path/report.docx", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.docx"), local)

	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "doc", string(data))
}

func TestFetchToDirRejectsBadInput(t *testing.T) {
	cfg := config.FetchConfig{}

	_, err := FetchToDir(context.Background(), cfg, "gopher://example.com/x.docx", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")

	_, err = FetchToDir(context.Background(), cfg, "https://example.com/", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file name")
}

func TestParseFTPURL(t *testing.T) {
	host, path, err := parseFTPURL("ftp://files.example.com/reports/plant.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "files.example.com:21", host)
	assert.Equal(t, "/reports/plant.xlsx", path)

	host, _, err = parseFTPURL("ftp://files.example.com:2121/plant.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "files.example.com:2121", host)

	_, _, err = parseFTPURL("https://files.example.com/plant.xlsx")
	require.Error(t, err)

	_, _, err = parseFTPURL("ftp://files.example.com")
	require.Error(t, err)
}
