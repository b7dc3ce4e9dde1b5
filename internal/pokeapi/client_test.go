package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/v2?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api/v2/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL without host returned nil error")
	}
}

func TestClient_FetchPageEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ListPage{
			Count:   45,
			Results: []ListEntry{{Name: "bulbasaur", URL: "http://x/pokemon/1/"}},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/v2", time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	page, err := c.FetchPage(context.Background(), 20, 40)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if page.Count != 45 || len(page.Results) != 1 || page.Results[0].Name != "bulbasaur" {
		t.Fatalf("FetchPage payload = %#v", page)
	}
	if gotPath != "/api/v2/pokemon" {
		t.Fatalf("path = %q, want /api/v2/pokemon", gotPath)
	}
	if gotQuery.Get("limit") != "20" || gotQuery.Get("offset") != "40" {
		t.Fatalf("query = %v, want limit=20 offset=40", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "pokesearch/") {
		t.Fatalf("User-Agent = %q, want pokesearch/*", gotUserAgent)
	}
}

func TestClient_FetchDetailByNameAndEntryURL(t *testing.T) {
	t.Parallel()

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":132,"name":"ditto","abilities":[{"ability":{"name":"limber"}},{"ability":{"name":"imposter"},"is_hidden":true}]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/v2/", time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	detail, err := c.FetchDetail(context.Background(), " ditto ")
	if err != nil {
		t.Fatalf("FetchDetail returned error: %v", err)
	}
	if detail.Name != "ditto" || detail.ID != 132 {
		t.Fatalf("FetchDetail payload = %#v", detail)
	}
	if got := strings.Join(detail.AbilityNames(), ","); got != "limber,imposter" {
		t.Fatalf("AbilityNames = %q, want limber,imposter", got)
	}

	if _, err := c.FetchDetailURL(context.Background(), server.URL+"/api/v2/pokemon/132/"); err != nil {
		t.Fatalf("FetchDetailURL returned error: %v", err)
	}

	if len(paths) != 2 || paths[0] != "/api/v2/pokemon/ditto" || paths[1] != "/api/v2/pokemon/132/" {
		t.Fatalf("paths = %v", paths)
	}
}

func TestClient_FetchDetailStaysUnderPokemonPath(t *testing.T) {
	t.Parallel()

	var otherHits atomic.Int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		otherHits.Add(1)
		_, _ = w.Write([]byte(`{"name":"evil"}`))
	}))
	t.Cleanup(other.Close)

	var mu sync.Mutex
	var rawPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		rawPaths = append(rawPaths, r.URL.EscapedPath())
		mu.Unlock()
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/v2/", time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	names := []string{other.URL + "/x", "a/b", "../ability/limber", "mr. mime"}
	for _, name := range names {
		if _, err := c.FetchDetail(context.Background(), name); !errors.Is(err, ErrNotFound) {
			t.Fatalf("FetchDetail(%q) error = %v, want ErrNotFound from the api server", name, err)
		}
	}
	for _, name := range []string{".", ".."} {
		if _, err := c.FetchDetail(context.Background(), name); err == nil {
			t.Fatalf("FetchDetail(%q) returned nil error", name)
		}
	}

	if n := otherHits.Load(); n != 0 {
		t.Fatalf("other host received %d requests", n)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(rawPaths) != len(names) {
		t.Fatalf("api requests = %v, want %d", rawPaths, len(names))
	}
	for _, p := range rawPaths {
		rest, ok := strings.CutPrefix(p, "/api/v2/pokemon/")
		if !ok || rest == "" || strings.Contains(rest, "/") {
			t.Fatalf("request path %q left /api/v2/pokemon/", p)
		}
	}
}

func TestClient_FetchDetailURLRejectsForeignURLs(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"name":"evil"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/v2/", time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	foreign := []string{
		"http://other.test/api/v2/pokemon/1/",
		server.URL + "/api/v2/ability/7/",
		server.URL + "/api/v2/pokemon/../ability/7/",
		server.URL + "/api/v2/pokemon/",
		"ditto",
	}
	for _, raw := range foreign {
		if _, err := c.FetchDetailURL(context.Background(), raw); !errors.Is(err, ErrForeignURL) {
			t.Fatalf("FetchDetailURL(%q) error = %v, want ErrForeignURL", raw, err)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("server received %d requests, want 0", n)
	}
}

func TestClient_FetchDetailRequiresKey(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchDetail(context.Background(), "   "); err == nil {
		t.Fatalf("FetchDetail returned nil error, want error")
	}
	if _, err := c.FetchDetailURL(context.Background(), "   "); err == nil {
		t.Fatalf("FetchDetailURL returned nil error, want error")
	}
}

func TestClient_HTTPErrorsDecodeErrorsAndShape(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pokemon/broken":
			_, _ = w.Write([]byte("{not-json"))
		case "/pokemon/nameless":
			_, _ = w.Write([]byte(`{"abilities":[]}`))
		case "/pokemon/boom":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/pokemon":
			_, _ = w.Write([]byte(`{"count":3}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.FetchDetail(ctx, "doesnotexist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchDetail error = %v, want ErrNotFound", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("FetchDetail error = %v, want *StatusError 404", err)
	}

	_, err = c.FetchDetail(ctx, "boom")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") || errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchDetail error = %v, want status 500 error", err)
	}

	_, err = c.FetchDetail(ctx, "broken")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchDetail error = %v, want decode response error", err)
	}

	_, err = c.FetchDetail(ctx, "nameless")
	if !errors.Is(err, ErrShape) {
		t.Fatalf("FetchDetail error = %v, want ErrShape", err)
	}

	_, err = c.FetchPage(ctx, 20, 0)
	if !errors.Is(err, ErrShape) {
		t.Fatalf("FetchPage error = %v, want ErrShape for missing results", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchPage(context.Background(), 20, 0)
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("FetchPage error = %v, want execute request error", err)
	}
}
