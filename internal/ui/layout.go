package ui

// Terminal width thresholds and sizes for the card layout.
const (
	// LayoutCompactWidth is the threshold below which cards stack in one column.
	LayoutCompactWidth = 60

	// DefaultWidth is used before the first WindowSizeMsg arrives.
	DefaultWidth = 80

	// CardWidth is the outer width of a result card.
	CardWidth = 36

	// cardGap is the horizontal space between card columns.
	cardGap = 1
)

// User-facing copy.
const (
	TooltipText = "The search is performed by a complete match of the Pokemon name"
	EmptyText   = "No results found."
	LoadingText = "Loading..."
	FaultTitle  = "Something went wrong."
	FaultPrompt = "Press r to reload"
	InputHint   = "Search Pokemon..."
	InfoIcon    = "(?)"
	SearchLabel = "Search"
	PrevLabel   = "Previous"
	NextLabel   = "Next"
)

const (
	appTitle       = "pokesearch"
	inputCharLimit = 64
	maxCardColumns = 3
)

// columnsFor returns how many cards fit side by side in width.
func columnsFor(width int) int {
	if width < LayoutCompactWidth {
		return 1
	}
	cols := (width + cardGap) / (CardWidth + cardGap)
	return max(1, min(cols, maxCardColumns))
}
