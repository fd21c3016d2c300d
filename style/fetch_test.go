package style

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type mapFetcher struct {
	sheets map[string]string
	calls  map[string]int
}

func (m *mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[url]++
	body, ok := m.sheets[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(body), nil
}

func TestParseLinkedSheets(t *testing.T) {
	t.Parallel()
	doc := mustParseHTML(t, `<html><head>
		<link rel="stylesheet" href="/css/site.css">
		<link rel="stylesheet" href="/css/site.css">
		<link rel="icon" href="/favicon.css">
		<link rel="stylesheet" href="missing.css">
		</head><body><div class="list"></div></body></html>`)
	f := &mapFetcher{sheets: map[string]string{
		"https://example.com/css/site.css": `@import url("base.css"); .list { overflow-y: auto }`,
		"https://example.com/css/base.css": `@import "site.css"; .list { overflow-y: hidden; color: red }`,
		"https://example.com/favicon.css":  `.list { color: blue }`,
	}}
	ss := Parse(context.Background(), doc, Options{BaseURL: "https://example.com/app/index.html", Fetcher: f})
	n := mustFind(t, doc, ".list").HTML
	if got := ss.Value(n, "overflow-y"); got != "auto" {
		t.Fatalf("overflow-y = %q, want auto (site.css after its import)", got)
	}
	if got := ss.Value(n, "color"); got != "red" {
		t.Fatalf("color = %q, want red", got)
	}
	if f.calls["https://example.com/css/site.css"] != 1 {
		t.Fatalf("site.css fetched %d times", f.calls["https://example.com/css/site.css"])
	}
	if f.calls["https://example.com/favicon.css"] != 0 {
		t.Fatal("non-stylesheet link was fetched")
	}
	if f.calls["https://example.com/app/missing.css"] != 1 {
		t.Fatalf("relative link not resolved against base: %v", f.calls)
	}
}

func TestParseOfflineSkipsLinks(t *testing.T) {
	t.Parallel()
	doc := mustParseHTML(t, `<link rel="stylesheet" href="https://example.com/a.css"><style>@import "b.css"; p { color: red }</style><p></p>`)
	ss := Parse(context.Background(), doc, Options{})
	if got := ss.Value(mustFind(t, doc, "p").HTML, "color"); got != "red" {
		t.Fatalf("color = %q, want red", got)
	}
}

func TestHTTPFetcherCachesAndDecodes(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch r.URL.Path {
		case "/gz.css":
			if r.Header.Get("Accept") != "text/css" {
				t.Errorf("unexpected Accept %q", r.Header.Get("Accept"))
			}
			if r.Header.Get("User-Agent") != "vetter-test" {
				t.Errorf("unexpected User-Agent %q", r.Header.Get("User-Agent"))
			}
			var buf bytes.Buffer
			zw := gzip.NewWriter(&buf)
			zw.Write([]byte(".a { overflow: hidden }"))
			zw.Close()
			w.Header().Set("Content-Encoding", "gzip")
			w.Write(buf.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := &HTTPFetcher{
		Client:    &http.Client{Transport: &http.Transport{DisableCompression: true}},
		UserAgent: "vetter-test",
		Cache:     NewCache(time.Minute, nil),
	}
	for i := 0; i < 2; i++ {
		b, err := f.Fetch(context.Background(), srv.URL+"/gz.css")
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if string(b) != ".a { overflow: hidden }" {
			t.Fatalf("body = %q", b)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected one upstream hit, got %d", n)
	}
	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.css"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(time.Minute, func() time.Time { return now })
	c.Put("a", []byte("x"))
	if b, ok := c.Get("a"); !ok || string(b) != "x" {
		t.Fatalf("Get(a) = %q, %v", b, ok)
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not evicted, len=%d", c.Len())
	}

	forever := NewCache(0, func() time.Time { return now })
	forever.Put("b", []byte("y"))
	now = now.Add(24 * time.Hour)
	if _, ok := forever.Get("b"); !ok {
		t.Fatal("zero ttl should keep entries")
	}
}

func TestHTTPFetcherFetchDocument(t *testing.T) {
	t.Parallel()
	var hits int32
	var accept, ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		accept.Store(r.Header.Get("Accept"))
		ua.Store(r.Header.Get("User-Agent"))
		if r.URL.Path != "/page" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<p>hi</p>"))
	}))
	defer srv.Close()

	f := &HTTPFetcher{
		Header:    http.Header{"Accept": {"text/css"}},
		UserAgent: "vetter-test",
		Cache:     NewCache(time.Minute, nil),
	}
	for i := 0; i < 2; i++ {
		b, err := f.FetchDocument(context.Background(), srv.URL+"/page")
		if err != nil {
			t.Fatalf("fetch document: %v", err)
		}
		if string(b) != "<p>hi</p>" {
			t.Fatalf("body = %q", b)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("documents should bypass the cache, got %d upstream hits", n)
	}
	if f.Cache.Len() != 0 {
		t.Fatalf("cache holds %d entries after document fetches", f.Cache.Len())
	}
	if got := accept.Load(); got != "text/html,application/xhtml+xml" {
		t.Fatalf("Accept = %v", got)
	}
	if got := ua.Load(); got != "vetter-test" {
		t.Fatalf("User-Agent = %v", got)
	}

	if _, err := f.FetchDocument(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected an error for a 404 page")
	}
}
