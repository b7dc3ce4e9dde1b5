package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	id          int
	panicUpdate bool
	panicView   bool
	seen        []tea.Msg
}

func (s stubModel) Init() tea.Cmd { return nil }

func (s stubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.panicUpdate {
		panic("update exploded")
	}
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s stubModel) View() string {
	if s.panicView {
		panic("view exploded")
	}
	return "stub view"
}

func stubFactory(templates ...stubModel) (Factory, *int) {
	built := 0
	return func() tea.Model {
		tmpl := templates[min(built, len(templates)-1)]
		built++
		tmpl.id = built
		return tmpl
	}, &built
}

func TestBoundary_PassesThroughWhenHealthy(t *testing.T) {
	build, _ := stubFactory(stubModel{})
	b := NewBoundary(build, GetTheme(""), nil)

	next, _ := b.Update(runes("x"))
	b = next.(Boundary)
	assert.False(t, b.Faulted())
	assert.Equal(t, "stub view", b.View())
	assert.Len(t, b.inner.(stubModel).seen, 1)
}

func TestBoundary_RecoversViewPanic(t *testing.T) {
	build, built := stubFactory(stubModel{panicView: true}, stubModel{})
	b := NewBoundary(build, GetTheme(""), nil)

	out := plain(b.View())
	assert.Contains(t, out, FaultTitle)
	assert.Contains(t, out, FaultPrompt)
	assert.True(t, b.Faulted())

	// Keys other than reload and quit are swallowed.
	next, cmd := b.Update(runes("x"))
	b = next.(Boundary)
	assert.Nil(t, cmd)
	assert.True(t, b.Faulted())

	next, _ = b.Update(runes("r"))
	b = next.(Boundary)
	assert.False(t, b.Faulted())
	assert.Equal(t, 2, *built)
	assert.Equal(t, "stub view", b.View())
}

func TestBoundary_RecoversUpdatePanic(t *testing.T) {
	build, _ := stubFactory(stubModel{panicUpdate: true}, stubModel{})
	b := NewBoundary(build, GetTheme(""), nil)

	next, cmd := b.Update(runes("x"))
	b = next.(Boundary)
	assert.Nil(t, cmd)
	assert.True(t, b.Faulted())
	assert.Contains(t, plain(b.View()), FaultTitle)
}

func TestBoundary_ReloadReplaysWindowSize(t *testing.T) {
	build, _ := stubFactory(stubModel{panicView: true}, stubModel{})
	b := NewBoundary(build, GetTheme(""), nil)

	next, _ := b.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	b = next.(Boundary)
	_ = b.View()
	require.True(t, b.Faulted())

	_, cmd := b.Update(runes("r"))
	require.NotNil(t, cmd)
	assert.Contains(t, collect(cmd), tea.Msg(tea.WindowSizeMsg{Width: 120, Height: 40}))
}

func TestBoundary_QuitWhileFaulted(t *testing.T) {
	build, _ := stubFactory(stubModel{panicView: true})
	b := NewBoundary(build, GetTheme(""), nil)
	_ = b.View()

	_, cmd := b.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBoundary_FaultKeyTripsAndReloadRestoresTerm(t *testing.T) {
	h := newHarness(t, "")
	b := NewBoundary(func() tea.Model { return h.model() }, GetTheme(""), nil)

	next, _ := b.Update(runes("ditto"))
	b = next.(Boundary)
	next, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	b = next.(Boundary)
	for _, msg := range collect(cmd) {
		next, _ = b.Update(msg)
		b = next.(Boundary)
	}
	require.Contains(t, plain(b.View()), "Abilities: limber, imposter")

	next, _ = b.Update(tea.KeyMsg{Type: tea.KeyEsc})
	b = next.(Boundary)
	next, _ = b.Update(runes("!"))
	b = next.(Boundary)
	assert.Contains(t, plain(b.View()), FaultTitle)

	next, _ = b.Update(runes("r"))
	b = next.(Boundary)
	require.False(t, b.Faulted())

	m := b.inner.(Model)
	assert.Equal(t, "ditto", m.input.Value())
	assert.True(t, m.view.Loading)
	assert.Contains(t, plain(b.View()), LoadingText)
}
