package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pokesearch/internal/prefs"
	"github.com/five82/pokesearch/internal/search"
)

// newPokeServer serves a three-entry collection where entry "missingno" has
// no detail document.
func newPokeServer(t *testing.T) *httptest.Server {
	t.Helper()
	names := []string{"bulbasaur", "missingno", "ditto"}

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/pokemon":
			results := make([]map[string]string, 0, len(names))
			for _, n := range names {
				results = append(results, map[string]string{"name": n, "url": srv.URL + "/pokemon/" + n + "/"})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"count": 3, "results": results})
		case strings.HasPrefix(r.URL.Path, "/pokemon/"):
			name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pokemon/"), "/")
			if name == "missingno" || name == "doesnotexist" {
				http.NotFound(w, r)
				return
			}
			fmt.Fprintf(w, `{"id":1,"name":%q,"abilities":[{"ability":{"name":"limber"}},{"ability":{"name":"imposter"}}]}`, name)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, apiURL string) *Env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("POKESEARCH_API_URL", apiURL)
	t.Setenv("POKESEARCH_LOG_FILE", filepath.Join(dir, "pokesearch.log"))
	t.Setenv("POKESEARCH_PAGE_LIMIT", "")
	t.Setenv("POKESEARCH_REQUEST_TIMEOUT", "")
	t.Setenv("POKESEARCH_FETCH_CONCURRENCY", "")
	t.Setenv("POKESEARCH_LOG_LEVEL", "")
	t.Setenv("POKESEARCH_PREFS", "")

	env, err := Setup(Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		Verbose:    true,
	})
	require.NoError(t, err)
	t.Cleanup(env.Close)
	return env
}

func TestSetup_AppliesOverrides(t *testing.T) {
	env := setupEnv(t, "http://127.0.0.1:1")

	assert.Equal(t, 20, env.Config.PageLimit)
	assert.True(t, strings.HasSuffix(env.PrefsPath, "prefs.toml"))
	assert.NotNil(t, env.Resolver)
}

func TestSetup_BadConfigFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_limit = 500\n"), 0o644))
	t.Setenv("POKESEARCH_LOG_FILE", filepath.Join(dir, "x.log"))

	_, err := Setup(Options{ConfigPath: path})
	assert.Error(t, err)
}

func TestSetup_MissingExplicitEnvFileFails(t *testing.T) {
	_, err := Setup(Options{EnvFile: filepath.Join(t.TempDir(), "nope.env")})
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	env := setupEnv(t, newPokeServer(t).URL)

	out := env.Lookup(context.Background(), "ditto")
	require.False(t, out.Failed(), out.Error)
	require.Len(t, out.Items, 1)
	assert.Equal(t, search.Record{Name: "ditto", Description: "Abilities: limber, imposter"}, out.Items[0])

	out = env.Lookup(context.Background(), "doesnotexist")
	assert.Equal(t, search.MsgNotFound, out.Error)
}

func TestList_PartialFailure(t *testing.T) {
	env := setupEnv(t, newPokeServer(t).URL)

	out := env.List(context.Background(), 1, 0)
	require.False(t, out.Failed(), out.Error)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "bulbasaur", out.Items[0].Name)
	assert.True(t, out.Items[1].IsPlaceholder())
	assert.Equal(t, "ditto", out.Items[2].Name)
	assert.Equal(t, 3, out.Count)
}

func TestList_UnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	env := setupEnv(t, url)

	out := env.List(context.Background(), 1, 20)
	assert.Equal(t, search.MsgListFailed, out.Error)
	assert.Empty(t, out.Items)
}

func TestWriteOutcome(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOutcome(&buf, search.Outcome{
		Mode:  search.ModeBrowse,
		Items: []search.Record{{Name: "bulbasaur", Description: "Abilities: overgrow"}, search.Placeholder()},
		Count: 45,
		Page:  2,
	}, 20)
	require.NoError(t, err)
	assert.Equal(t,
		"bulbasaur\n  Abilities: overgrow\n\nunknown\n  Failed to load description\n\nPage 2 / 3 (45 total)\n",
		buf.String())

	buf.Reset()
	require.NoError(t, WriteOutcome(&buf, search.Outcome{Mode: search.ModeTerm, Items: []search.Record{{Name: "mew", Description: "Abilities: synchronize"}}, Count: 1, Page: 1}, 20))
	assert.NotContains(t, buf.String(), "Page")

	buf.Reset()
	err = WriteOutcome(&buf, search.Outcome{Mode: search.ModeTerm, Error: search.MsgNotFound}, 20)
	assert.EqualError(t, err, search.MsgNotFound)
	assert.Empty(t, buf.String())
}

func TestFactory_RestoresPersistedState(t *testing.T) {
	env := setupEnv(t, "http://127.0.0.1:1")
	require.NoError(t, prefs.Save(env.PrefsPath, prefs.Prefs{Theme: "Slate", SearchTerm: "ditto"}))

	ctrl := env.NewController()
	assert.Equal(t, "ditto", ctrl.Snapshot().SearchTerm)

	model := env.Factory(context.Background())()
	require.NotNil(t, model)
	assert.Equal(t, "Slate", env.theme())
}
