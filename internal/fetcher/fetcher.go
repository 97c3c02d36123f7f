// Package fetcher downloads remote report inputs over HTTP and FTP so the
// compare command can accept URLs as well as local paths.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"github.com/itac-tools/reportrecon/internal/config"
)

// Fetcher downloads remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path.
	// Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// IsRemote reports whether the input names a URL this package can fetch
// rather than a local path.
func IsRemote(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
		return true
	}
	return false
}

// FetchToDir downloads the URL into dir, keeping the remote file name, and
// returns the local path. The scheme picks the fetcher.
func FetchToDir(ctx context.Context, cfg config.FetchConfig, rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: parse url %s", rawURL)
	}

	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", eris.Errorf("fetcher: no file name in url %s", rawURL)
	}
	dest := filepath.Join(dir, name)

	var f Fetcher
	switch u.Scheme {
	case "http", "https":
		f = NewHTTPFetcher(HTTPOptions{
			UserAgent:  cfg.UserAgent,
			Timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
			MaxRetries: cfg.MaxRetries,
		})
	case "ftp":
		f = NewFTPFetcher(FTPOptions{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		})
	default:
		return "", eris.Errorf("fetcher: unsupported scheme %q", u.Scheme)
	}

	if _, err := f.DownloadToFile(ctx, rawURL, dest); err != nil {
		return "", err
	}
	return dest, nil
}
