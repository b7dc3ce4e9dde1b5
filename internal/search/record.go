package search

import (
	"strings"

	"github.com/five82/pokesearch/internal/pokeapi"
)

// Record is what a result card shows.
type Record struct {
	Name        string
	Description string
}

// Placeholder values substituted for a detail fetch that failed.
const (
	PlaceholderName        = "unknown"
	PlaceholderDescription = "Failed to load description"
)

// Placeholder returns the record used for an individually failed detail fetch.
func Placeholder() Record {
	return Record{Name: PlaceholderName, Description: PlaceholderDescription}
}

// IsPlaceholder reports whether r is the failed-fetch sentinel.
func (r Record) IsPlaceholder() bool {
	return r == Placeholder()
}

// Describe derives the card summary for a detail payload.
func Describe(d pokeapi.Detail) string {
	return "Abilities: " + strings.Join(d.AbilityNames(), ", ")
}

// NewRecord builds the card for a detail payload under the given display name.
func NewRecord(name string, d pokeapi.Detail) Record {
	if strings.TrimSpace(name) == "" {
		name = d.Name
	}
	return Record{Name: name, Description: Describe(d)}
}
