package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/pokesearch/internal/pokeapi"
)

// Mode selects how a query is resolved.
type Mode int

const (
	// ModeBrowse lists a page of the collection.
	ModeBrowse Mode = iota
	// ModeTerm looks up a single entity by exact name.
	ModeTerm
)

func (m Mode) String() string {
	if m == ModeTerm {
		return "term"
	}
	return "browse"
}

// User-facing error messages.
const (
	MsgListFailed  = "Failed to load list"
	MsgNotFound    = "Pokemon not found"
	MsgFetchFailed = "Fail to fetch data"
)

// DefaultLimit is the page size used when a query carries none.
const DefaultLimit = 20

// Query is one resolver invocation.
type Query struct {
	Term  string
	Page  int
	Limit int
}

// ModeOf reports which mode a raw term selects.
func ModeOf(term string) Mode {
	if strings.TrimSpace(term) == "" {
		return ModeBrowse
	}
	return ModeTerm
}

// Outcome is the settled result of a resolve. Error is empty on success.
type Outcome struct {
	Mode  Mode
	Items []Record
	Count int
	Page  int
	Error string
	Cause error
}

// Failed reports whether the outcome carries a user-facing error.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Resolver decides between browse and term mode and normalises failures.
type Resolver struct {
	fetcher    pokeapi.Fetcher
	aggregator *Aggregator
	logger     *zap.Logger
}

// NewResolver builds a Resolver over fetcher, aggregating list pages with aggregator.
func NewResolver(fetcher pokeapi.Fetcher, aggregator *Aggregator, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if aggregator == nil {
		aggregator = NewAggregator(fetcher, DefaultConcurrency, logger)
	}
	return &Resolver{fetcher: fetcher, aggregator: aggregator, logger: logger}
}

// Resolve runs q to completion. It never panics; unexpected faults become a
// MsgFetchFailed outcome.
func (r *Resolver) Resolve(ctx context.Context, q Query) (out Outcome) {
	q = normalize(q)
	mode := ModeOf(q.Term)
	log := r.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Stringer("mode", mode),
		zap.String("term", q.Term),
		zap.Int("page", q.Page),
		zap.Int("limit", q.Limit),
	)
	started := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			out = Outcome{
				Mode:  mode,
				Items: []Record{},
				Page:  q.Page,
				Error: MsgFetchFailed,
				Cause: fmt.Errorf("resolve panicked: %v", rec),
			}
		}
		if out.Failed() {
			log.Warn("resolve failed", zap.String("message", out.Error), zap.Error(out.Cause), zap.Duration("elapsed", time.Since(started)))
			return
		}
		log.Info("resolve complete", zap.Int("items", len(out.Items)), zap.Int("count", out.Count), zap.Duration("elapsed", time.Since(started)))
	}()

	if mode == ModeTerm {
		return r.resolveTerm(ctx, q)
	}
	return r.resolveBrowse(ctx, q)
}

func (r *Resolver) resolveTerm(ctx context.Context, q Query) Outcome {
	detail, err := r.fetcher.FetchDetail(ctx, q.Term)
	if err != nil {
		return Outcome{Mode: ModeTerm, Items: []Record{}, Page: 1, Error: MsgNotFound, Cause: err}
	}
	return Outcome{
		Mode:  ModeTerm,
		Items: []Record{NewRecord(detail.Name, detail)},
		Count: 1,
		Page:  1,
	}
}

func (r *Resolver) resolveBrowse(ctx context.Context, q Query) Outcome {
	offset := (q.Page - 1) * q.Limit
	page, err := r.fetcher.FetchPage(ctx, q.Limit, offset)
	if err != nil {
		return Outcome{Mode: ModeBrowse, Items: []Record{}, Page: q.Page, Error: MsgListFailed, Cause: err}
	}
	return Outcome{
		Mode:  ModeBrowse,
		Items: r.aggregator.Aggregate(ctx, page.Results),
		Count: page.Count,
		Page:  q.Page,
	}
}

func normalize(q Query) Query {
	q.Term = strings.TrimSpace(q.Term)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}
