package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pokesearch/internal/search"
	"github.com/five82/pokesearch/internal/state"
)

// focusArea identifies the control that owns keyboard input.
type focusArea int

const (
	focusInput focusArea = iota
	focusInfo
	focusResults
	focusCount
)

func (f focusArea) next() focusArea { return (f + 1) % focusCount }
func (f focusArea) prev() focusArea { return (f + focusCount - 1) % focusCount }

// renderHeader renders the title bar: logo, mode and theme.
func renderHeader(v state.View, theme Theme, width int) string {
	styles := theme.Styles()
	bg := NewBgStyle(theme.Surface)

	mode := "Browsing all Pokemon"
	if v.SearchTerm != "" {
		mode = "Exact match: " + v.SearchTerm
	}
	parts := []string{
		bg.Render(appTitle, styles.Logo),
		bg.Render(mode, styles.MutedText),
		bg.Render(theme.Name, styles.FaintText),
	}
	return styles.Header.Render(bg.FillLine(bg.Join(parts, 2), max(0, width-2)))
}

// renderSearchBar renders the input box, the search button and the info icon.
func renderSearchBar(input string, focus focusArea, styles Styles) string {
	box := styles.Input
	if focus == focusInput {
		box = styles.InputFocus
	}
	icon := styles.Icon
	if focus == focusInfo {
		icon = styles.IconFocus
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		box.Render(input),
		" ",
		styles.Button.Render(SearchLabel),
		" ",
		icon.Render(InfoIcon),
	)
}

func renderTooltip(styles Styles) string {
	return styles.Tooltip.Render(TooltipText)
}

// renderCard renders one record. Placeholder records use the danger color.
func renderCard(r search.Record, styles Styles) string {
	desc := styles.Text.Render(r.Description)
	if r.IsPlaceholder() {
		desc = styles.DangerText.Render(r.Description)
	}
	return styles.Card.
		Width(CardWidth - 2).
		Render(styles.CardTitle.Render(r.Name) + "\n" + desc)
}

// renderCards lays records out in rows of as many cards as fit in width.
func renderCards(items []search.Record, styles Styles, width int) string {
	if len(items) == 0 {
		return styles.MutedText.Render(EmptyText)
	}

	cols := columnsFor(width)
	gap := strings.Repeat(" ", cardGap)
	rows := make([]string, 0, (len(items)+cols-1)/cols)
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, gap)
			}
			cells = append(cells, renderCard(items[i], styles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// renderPagination renders "Previous  Page X / Y  Next"; controls at a bound
// are drawn disabled.
func renderPagination(v state.View, styles Styles) string {
	prev := styles.Disabled.Render(PrevLabel)
	if v.CanPrev() {
		prev = styles.PageControl.Render(PrevLabel)
	}
	next := styles.Disabled.Render(NextLabel)
	if v.CanNext() {
		next = styles.PageControl.Render(NextLabel)
	}
	label := styles.Text.Render(fmt.Sprintf("Page %d / %d", v.Page, v.TotalPages()))
	return prev + "  " + label + "  " + next
}

func renderLoader(spinner string, styles Styles) string {
	return spinner + " " + styles.MutedText.Render(LoadingText)
}

func renderError(msg string, styles Styles) string {
	return styles.DangerText.Render(msg)
}

// renderBody picks loader, error or results for the current view.
func renderBody(v state.View, spinner string, styles Styles, width int) string {
	switch {
	case v.Loading:
		return renderLoader(spinner, styles)
	case v.Error != "":
		return renderError(v.Error, styles)
	}

	body := renderCards(v.Items, styles, width)
	if v.ShowPagination() {
		body += "\n\n" + renderPagination(v, styles)
	}
	return body
}

// renderFault is the fallback screen shown by the boundary.
func renderFault(styles Styles) string {
	return styles.DangerText.Render(FaultTitle) + "\n\n" + styles.MutedText.Render(FaultPrompt)
}
