package ui

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Factory builds a fresh root model. The boundary calls it on every reload.
type Factory func() tea.Model

// fault records a recovered panic. It is shared by pointer so View, which
// cannot return a new model, can still trip the boundary.
type fault struct {
	value any
}

func (f *fault) active() bool { return f.value != nil }

// Boundary wraps a model and replaces it with a recovery screen when Update or
// View panics. Reloading discards the faulted model and builds a new one.
type Boundary struct {
	build  Factory
	inner  tea.Model
	fault  *fault
	size   *tea.WindowSizeMsg
	keys   keyMap
	theme  Theme
	logger *zap.Logger
}

// NewBoundary wraps the model produced by build.
func NewBoundary(build Factory, theme Theme, logger *zap.Logger) Boundary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Boundary{
		build:  build,
		inner:  build(),
		fault:  &fault{},
		keys:   DefaultKeyMap(),
		theme:  theme,
		logger: logger,
	}
}

// Faulted reports whether the boundary is showing the recovery screen.
func (b Boundary) Faulted() bool {
	return b.fault.active()
}

// Init implements tea.Model.
func (b Boundary) Init() tea.Cmd {
	return b.inner.Init()
}

// Update implements tea.Model.
func (b Boundary) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		b.size = &ws
	}
	if b.fault.active() {
		return b.updateFaulted(msg)
	}

	defer func() {
		if r := recover(); r != nil {
			b.trip("update", r)
			model, cmd = b, nil
		}
	}()

	next, cmd := b.inner.Update(msg)
	b.inner = next
	return b, cmd
}

// View implements tea.Model.
func (b Boundary) View() (out string) {
	if b.fault.active() {
		return renderFault(b.theme.Styles())
	}

	defer func() {
		if r := recover(); r != nil {
			b.trip("view", r)
			out = renderFault(b.theme.Styles())
		}
	}()
	return b.inner.View()
}

// updateFaulted handles input on the recovery screen. Everything except
// reload and quit is dropped.
func (b Boundary) updateFaulted(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch {
	case key.Matches(km, b.keys.ForceQuit), key.Matches(km, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(km, b.keys.Reload):
		return b.reload()
	}
	return b, nil
}

func (b Boundary) reload() (tea.Model, tea.Cmd) {
	b.logger.Info("reloading after fault")
	b.inner = b.build()
	b.fault = &fault{}

	cmds := []tea.Cmd{b.inner.Init()}
	if b.size != nil {
		size := *b.size
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return b, tea.Batch(cmds...)
}

func (b Boundary) trip(phase string, r any) {
	b.fault.value = r
	b.logger.Error("recovered render fault",
		zap.String("phase", phase),
		zap.String("panic", fmt.Sprint(r)),
		zap.ByteString("stack", debug.Stack()),
	)
}
