package service

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Fetcher retrieves an input file by name.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirFetcher reads inputs from a local directory.
type DirFetcher struct {
	Dir string
}

// Fetch reads name from the directory.
func (f DirFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.Contains(name, "..") || filepath.IsAbs(name) {
		return nil, eris.Errorf("invalid input name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(f.Dir, name))
	if err != nil {
		return nil, eris.Wrap(err, "read input")
	}
	return data, nil
}

// HTTPFetcher downloads inputs relative to a base URL.
type HTTPFetcher struct {
	Base   *url.URL
	Client *http.Client
}

// NewHTTPFetcher parses base and returns a fetcher with a default client.
func NewHTTPFetcher(base string) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, eris.Wrap(err, "service: parse source url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, eris.Errorf("service: source url %q must be http or https", base)
	}
	return &HTTPFetcher{Base: u, Client: &http.Client{Timeout: time.Minute}}, nil
}

// Fetch GETs name relative to the base URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := *f.Base
	u.Path = path.Join(u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "build request")
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "get %s", u.String())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("get %s: status %d", u.String(), resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read body")
	}
	return data, nil
}

// NewFetcher returns an HTTPFetcher when sourceURL is set, else a
// DirFetcher on dataDir.
func NewFetcher(dataDir, sourceURL string) (Fetcher, error) {
	if sourceURL != "" {
		return NewHTTPFetcher(sourceURL)
	}
	return DirFetcher{Dir: dataDir}, nil
}
