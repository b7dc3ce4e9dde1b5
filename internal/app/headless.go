package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/five82/pokesearch/internal/search"
)

// Lookup resolves a single Pokemon by exact name.
func (e *Env) Lookup(ctx context.Context, name string) search.Outcome {
	return e.Resolver.Resolve(ctx, search.Query{Term: name, Page: 1, Limit: e.Config.PageLimit})
}

// List resolves one browse page. limit <= 0 uses the configured page limit.
func (e *Env) List(ctx context.Context, page, limit int) search.Outcome {
	if limit <= 0 {
		limit = e.Config.PageLimit
	}
	return e.Resolver.Resolve(ctx, search.Query{Page: page, Limit: limit})
}

// WriteOutcome prints an outcome as plain text: one record per block, then the
// page line in browse mode. It returns an error carrying the user-facing
// message when the outcome failed.
func WriteOutcome(w io.Writer, out search.Outcome, limit int) error {
	if out.Failed() {
		return errors.New(out.Error)
	}

	var b strings.Builder
	if len(out.Items) == 0 {
		b.WriteString("No results found.\n")
	}
	for i, rec := range out.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n  %s\n", rec.Name, rec.Description)
	}
	if out.Mode == search.ModeBrowse {
		fmt.Fprintf(&b, "\nPage %d / %d (%d total)\n", out.Page, totalPages(out.Count, limit), out.Count)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func totalPages(count, limit int) int {
	if limit <= 0 || count <= 0 {
		return 1
	}
	return (count + limit - 1) / limit
}
