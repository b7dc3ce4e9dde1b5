package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run starts the Bubble Tea program behind a fault boundary and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, build Factory, theme Theme, logger *zap.Logger) error {
	p := tea.NewProgram(
		NewBoundary(build, theme, logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
