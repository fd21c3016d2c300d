package style

import (
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultFetchTimeout = 8 * time.Second
	maxSheetBytes       = 2 << 20
)

// Fetcher loads the body of a stylesheet.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches stylesheets over HTTP.
type HTTPFetcher struct {
	Client    *http.Client
	Header    http.Header
	UserAgent string
	// Cache, when set, keeps bodies between fetches.
	Cache *Cache
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, absURL string) ([]byte, error) {
	if f.Cache != nil {
		if b, ok := f.Cache.Get(absURL); ok {
			return b, nil
		}
	}
	b, err := f.fetch(ctx, absURL, "text/css")
	if err != nil {
		return nil, err
	}
	if f.Cache != nil {
		f.Cache.Put(absURL, b)
	}
	return b, nil
}

// FetchDocument loads a page body with an HTML Accept header. It bypasses the cache.
func (f *HTTPFetcher) FetchDocument(ctx context.Context, absURL string) ([]byte, error) {
	return f.fetch(ctx, absURL, "text/html,application/xhtml+xml")
}

func (f *HTTPFetcher) fetch(ctx context.Context, absURL, accept string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, absURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vals := range f.Header {
		if strings.EqualFold(k, "accept") {
			continue
		}
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", accept)
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", absURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("get %s: status %d", absURL, resp.StatusCode)
	}

	rc := io.ReadCloser(resp.Body)
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", absURL, err)
		}
		defer gr.Close()
		rc = gr
	case "deflate":
		if zr, err := zlib.NewReader(resp.Body); err == nil {
			defer zr.Close()
			rc = zr
		} else {
			fr := flate.NewReader(resp.Body)
			defer fr.Close()
			rc = fr
		}
	}
	body, err := io.ReadAll(io.LimitReader(rc, maxSheetBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", absURL, err)
	}
	return body, nil
}
