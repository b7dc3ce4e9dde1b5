package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/pokesearch/internal/prefs"
	"github.com/five82/pokesearch/internal/search"
	"github.com/five82/pokesearch/internal/state"
)

// Resolver runs a search query to completion.
type Resolver interface {
	Resolve(ctx context.Context, q search.Query) search.Outcome
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *state.Controller
	Resolver   Resolver
	Logger     *zap.Logger
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *state.Controller
	resolver   Resolver
	logger     *zap.Logger
	prefsPath  string

	// UI state
	theme       Theme
	keys        keyMap
	input       textinput.Model
	spinner     spinner.Model
	help        help.Model
	focus       focusArea
	showTooltip bool
	width       int
	height      int

	// Data state
	view state.View

	// Set by the fault key; the next render panics.
	faultArmed bool
}

// New creates a new Bubble Tea model. Controller and Resolver are required.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	view := opts.Controller.Snapshot()

	input := textinput.New()
	input.Placeholder = InputHint
	input.CharLimit = inputCharLimit
	input.Width = CardWidth
	input.Prompt = "› "
	input.SetValue(view.InputValue)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	theme := GetTheme(opts.ThemeName)
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:        ctx,
		controller: opts.Controller,
		resolver:   opts.Resolver,
		logger:     logger,
		prefsPath:  prefsPath,
		theme:      theme,
		keys:       DefaultKeyMap(),
		input:      input,
		spinner:    spin,
		help:       help.New(),
		focus:      focusInput,
		width:      DefaultWidth,
		view:       view,
	}
}

// Init implements tea.Model. It issues the mount request.
func (m Model) Init() tea.Cmd {
	req := m.controller.Mount()
	return tea.Batch(
		m.resolveCmd(req),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case resolvedMsg:
		if msg.owner != m.controller {
			return m, nil
		}
		m.controller.OnResolved(msg.seq, msg.outcome)
		m.view = m.controller.Snapshot()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.faultArmed {
		panic("simulated render fault")
	}

	styles := m.theme.Styles()
	v := m.view

	sections := []string{
		renderHeader(v, m.theme, m.width),
		renderSearchBar(m.input.View(), m.focus, styles),
	}
	if m.tooltipVisible() {
		sections = append(sections, renderTooltip(styles))
	}

	panel := styles.Panel
	if m.focus == focusResults {
		panel = styles.PanelFocus
	}
	body := renderBody(v, m.spinner.View(), styles, max(0, m.width-4))
	sections = append(sections,
		panel.Width(max(0, m.width-2)).Render(body),
		m.help.View(m.keys),
	)
	return strings.Join(sections, "\n")
}

func (m Model) tooltipVisible() bool {
	return m.showTooltip || m.focus == focusInfo
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		return m.setFocus(m.focus.next())
	case key.Matches(msg, m.keys.ShiftTab):
		return m.setFocus(m.focus.prev())
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.FocusSearch):
		return m.setFocus(focusInput)
	case key.Matches(msg, m.keys.Submit) && m.focus == focusInfo:
		return m.submit()
	case key.Matches(msg, m.keys.Tooltip):
		m.showTooltip = !m.showTooltip
	case key.Matches(msg, m.keys.PrevPage):
		return m.navigate(m.controller.NavigatePrev)
	case key.Matches(msg, m.keys.NextPage):
		return m.navigate(m.controller.NavigateNext)
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Fault):
		m.logger.Info("fault injected from keyboard")
		m.faultArmed = true
	}
	return m, nil
}

// handleInputKey routes keys while the search box has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev, next := pageKeysWhileTyping()
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Escape):
		return m.setFocus(focusResults)
	case key.Matches(msg, prev):
		return m.navigate(m.controller.NavigatePrev)
	case key.Matches(msg, next):
		return m.navigate(m.controller.NavigateNext)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.controller.SetInput(m.input.Value())
	m.view = m.controller.Snapshot()
	return m, cmd
}

func (m Model) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == focusInput {
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.controller.SetInput(m.input.Value())
	req := m.controller.Submit()
	m.view = m.controller.Snapshot()
	if m.input.Value() != m.view.SearchTerm {
		m.input.SetValue(m.view.SearchTerm)
	}
	return m, m.resolveCmd(req)
}

// navigate is a no-op unless the pagination controls are on screen.
func (m Model) navigate(move func() (state.Request, bool)) (tea.Model, tea.Cmd) {
	if !m.view.ShowPagination() {
		return m, nil
	}
	req, ok := move()
	if !ok {
		return m, nil
	}
	m.view = m.controller.Snapshot()
	return m, m.resolveCmd(req)
}

// cycleTheme switches to the next theme and persists it alongside the search term.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	name := m.theme.Name
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
		m.logger.Warn("save theme preference", zap.String("theme", name), zap.Error(err))
	}
}

// Messages

// resolvedMsg carries a settled outcome back to the controller that issued it.
type resolvedMsg struct {
	owner   *state.Controller
	seq     uint64
	outcome search.Outcome
}

// Commands

func (m Model) resolveCmd(req state.Request) tea.Cmd {
	ctx, resolver, owner := m.ctx, m.resolver, m.controller
	return func() tea.Msg {
		return resolvedMsg{
			owner:   owner,
			seq:     req.Seq,
			outcome: resolver.Resolve(ctx, req.Query),
		}
	}
}
