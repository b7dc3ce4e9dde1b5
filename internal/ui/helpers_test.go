package ui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/pokesearch/internal/prefs"
	"github.com/five82/pokesearch/internal/search"
	"github.com/five82/pokesearch/internal/state"
)

type fakeResolver struct {
	mu      sync.Mutex
	queries []search.Query
	answer  func(search.Query) search.Outcome
}

func (f *fakeResolver) Resolve(_ context.Context, q search.Query) search.Outcome {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.answer(q)
}

func (f *fakeResolver) last() search.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return search.Query{}
	}
	return f.queries[len(f.queries)-1]
}

// pokedex answers browse queries with 20 records out of 45 and term queries
// with a single match for "ditto".
func pokedex(q search.Query) search.Outcome {
	if q.Term == "" {
		items := make([]search.Record, 20)
		for i := range items {
			items[i] = search.Record{Name: "bulbasaur", Description: "Abilities: overgrow"}
		}
		return search.Outcome{Mode: search.ModeBrowse, Items: items, Count: 45, Page: q.Page}
	}
	if q.Term == "ditto" {
		return search.Outcome{
			Mode:  search.ModeTerm,
			Items: []search.Record{{Name: "ditto", Description: "Abilities: limber, imposter"}},
			Count: 1,
			Page:  1,
		}
	}
	return search.Outcome{Mode: search.ModeTerm, Items: []search.Record{}, Page: 1, Error: search.MsgNotFound}
}

type harness struct {
	resolver  *fakeResolver
	store     *prefs.MemoryStore
	prefsPath string
}

func newHarness(t *testing.T, term string) *harness {
	t.Helper()
	return &harness{
		resolver:  &fakeResolver{answer: pokedex},
		store:     prefs.NewMemoryStore(term),
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
}

func (h *harness) model() Model {
	return New(Options{
		Controller: state.New(h.store, 20, nil),
		Resolver:   h.resolver,
		PrefsPath:  h.prefsPath,
	})
}

// mounted returns a model whose initial resolve has settled.
func (h *harness) mounted() Model {
	m := h.model()
	return settle(m, m.Init())
}

// collect runs cmd and, one level deep, any batch it expands to. Only use it
// on commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

// settle feeds every resolvedMsg produced by cmd back into m.
func settle(m Model, cmd tea.Cmd) Model {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(resolvedMsg); ok {
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plain(s string) string {
	return ansi.Strip(s)
}
