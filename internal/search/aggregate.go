package search

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/pokesearch/internal/pokeapi"
)

// DefaultConcurrency bounds in-flight detail requests per page.
const DefaultConcurrency = 20

// Aggregator turns a list page into display records by fetching each entry's detail.
type Aggregator struct {
	fetcher     pokeapi.Fetcher
	concurrency int
	logger      *zap.Logger
}

// NewAggregator builds an Aggregator. concurrency <= 0 leaves the fan-out unbounded.
func NewAggregator(fetcher pokeapi.Fetcher, concurrency int, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{fetcher: fetcher, concurrency: concurrency, logger: logger}
}

// Aggregate fetches every entry's detail concurrently and waits for all of them
// to settle. The result has one record per entry, in entry order; failed
// fetches yield Placeholder records.
func (a *Aggregator) Aggregate(ctx context.Context, entries []pokeapi.ListEntry) []Record {
	records := make([]Record, len(entries))
	if len(entries) == 0 {
		return records
	}

	// Plain Group: a failed fetch must not cancel its siblings.
	var g errgroup.Group
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}

	for i, entry := range entries {
		g.Go(func() error {
			records[i] = a.resolveEntry(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	return records
}

func (a *Aggregator) resolveEntry(ctx context.Context, entry pokeapi.ListEntry) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("detail fetch panicked", zap.String("name", entry.Name), zap.Any("panic", r))
			rec = Placeholder()
		}
	}()

	var (
		detail pokeapi.Detail
		err    error
	)
	if u := strings.TrimSpace(entry.URL); u != "" {
		detail, err = a.fetcher.FetchDetailURL(ctx, u)
	} else {
		detail, err = a.fetcher.FetchDetail(ctx, entry.Name)
	}
	if err != nil {
		a.logger.Warn("detail fetch failed", zap.String("name", entry.Name), zap.Error(err))
		return Placeholder()
	}
	return NewRecord(entry.Name, detail)
}
