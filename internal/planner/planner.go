// Package planner runs staffing solves for the command-line tool and the HTTP
// server: boundary validation, a result cache, metrics, and running the
// synchronous solver off the caller's goroutine.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/staffing-planner/internal/metrics"
	"github.com/iwvelando/staffing-planner/pkg/constants"
	"github.com/iwvelando/staffing-planner/pkg/solver"
	"github.com/iwvelando/staffing-planner/pkg/validation"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// ErrBusy is returned when a new search is needed but the maximum number of
// searches is already running.
var ErrBusy = errors.New("too many searches in progress")

// Planner validates input and solves it, remembering recent results.
// Concurrent requests for the same input share one search.
type Planner struct {
	logger       *zap.Logger
	metrics      metrics.Collector
	limit        int
	cacheEntries int
	cache        *xsync.Map[uint64, cacheEntry]
	maxSearches  int
	searches     *semaphore.Weighted
	flights      singleflight.Group
	solve        func(roles []solver.Role, target, limit int) ([]solver.Result, error)
}

type cacheEntry struct {
	signature string
	results   []solver.Result
}

// Option configures a Planner.
type Option func(*Planner)

// WithLimit bounds the number of raw solution vectors per solve. A limit <= 0
// means unlimited.
func WithLimit(limit int) Option {
	return func(p *Planner) {
		p.limit = limit
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c metrics.Collector) Option {
	return func(p *Planner) {
		if c != nil {
			p.metrics = c
		}
	}
}

// WithCacheEntries sets how many distinct inputs are cached. Zero or less
// disables the cache.
func WithCacheEntries(n int) Option {
	return func(p *Planner) {
		p.cacheEntries = n
	}
}

// WithMaxSearches caps the number of searches running at once, including
// searches whose callers have already given up. Requests that would start
// another search fail with ErrBusy. Zero or less means no cap.
func WithMaxSearches(n int) Option {
	return func(p *Planner) {
		p.maxSearches = n
	}
}

// New constructs a Planner.
func New(logger *zap.Logger, opts ...Option) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Planner{
		logger:       logger,
		metrics:      metrics.NewNop(),
		cacheEntries: constants.DefaultCacheEntries,
		cache:        xsync.NewMap[uint64, cacheEntry](),
		solve:        solver.SolveWithLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxSearches > 0 {
		p.searches = semaphore.NewWeighted(int64(p.maxSearches))
	}
	return p
}

// Limit returns the configured solution limit.
func (p *Planner) Limit() int {
	return p.limit
}

// Plan validates roles and target and returns the ranked schedules. An empty
// list means no feasible schedule exists.
//
// The solve runs on its own goroutine and is shared with any identical request
// that arrives while it runs. If ctx ends first Plan returns ctx.Err(); the
// search itself cannot be interrupted and runs to completion in the
// background, after which its result is cached.
func (p *Planner) Plan(ctx context.Context, roles []solver.Role, target int) ([]solver.Result, error) {
	start := time.Now()

	if err := validation.ValidateRoles(roles, target); err != nil {
		p.logger.Debug("rejected plan request",
			zap.String("op", "planner.Plan"),
			zap.Error(err),
		)
		p.metrics.RecordSolve(metrics.OutcomeInvalid, time.Since(start).Seconds())
		return nil, err
	}

	sig := signature(roles, target, p.limit)
	key := xxh3.HashString(sig)

	if results, ok := p.lookup(key, sig); ok {
		p.logger.Debug("plan served from cache",
			zap.String("op", "planner.Plan"),
			zap.Int("schedules", len(results)),
		)
		p.metrics.RecordSolve(outcomeFor(results), time.Since(start).Seconds())
		return results, nil
	}

	if err := ctx.Err(); err != nil {
		p.metrics.RecordSolve(metrics.OutcomeCancelled, time.Since(start).Seconds())
		return nil, err
	}

	owned := append([]solver.Role(nil), roles...)
	done := p.flights.DoChan(sig, func() (interface{}, error) {
		return p.search(key, sig, owned, target)
	})

	select {
	case <-ctx.Done():
		p.logger.Warn("plan abandoned before the search finished",
			zap.String("op", "planner.Plan"),
			zap.Int("roles", len(roles)),
			zap.Int("target", target),
			zap.Duration("waited", time.Since(start)),
			zap.Error(ctx.Err()),
		)
		p.metrics.RecordSolve(metrics.OutcomeCancelled, time.Since(start).Seconds())
		return nil, ctx.Err()

	case out := <-done:
		elapsed := time.Since(start)
		if out.Shared {
			p.logger.Debug("plan shared an in-flight search",
				zap.String("op", "planner.Plan"),
				zap.Duration("waited", elapsed),
			)
		}
		if out.Err != nil {
			outcome := metrics.OutcomeInvalid
			switch {
			case errors.Is(out.Err, solver.ErrLimitExceeded):
				outcome = metrics.OutcomeLimit
			case errors.Is(out.Err, ErrBusy):
				outcome = metrics.OutcomeBusy
			}
			p.logger.Warn("plan failed",
				zap.String("op", "planner.Plan"),
				zap.Int("limit", p.limit),
				zap.Duration("duration", elapsed),
				zap.Error(out.Err),
			)
			p.metrics.RecordSolve(outcome, elapsed.Seconds())
			return nil, out.Err
		}

		results, _ := out.Val.([]solver.Result)

		p.logger.Info("plan computed",
			zap.String("op", "planner.Plan"),
			zap.Int("roles", len(roles)),
			zap.Int("target", target),
			zap.Int("schedules", len(results)),
			zap.Duration("duration", elapsed),
		)
		p.metrics.RecordResults(len(results))
		p.metrics.RecordSolve(outcomeFor(results), elapsed.Seconds())
		return cloneResults(results), nil
	}
}

// search runs one solve under the search cap and caches a successful result.
func (p *Planner) search(key uint64, sig string, roles []solver.Role, target int) ([]solver.Result, error) {
	if p.searches != nil {
		if !p.searches.TryAcquire(1) {
			return nil, fmt.Errorf("%d searches running: %w", p.maxSearches, ErrBusy)
		}
		defer p.searches.Release(1)
	}

	results, err := p.solve(roles, target, p.limit)
	if err != nil {
		return nil, err
	}
	p.store(key, sig, results)
	return results, nil
}

func (p *Planner) lookup(key uint64, sig string) ([]solver.Result, bool) {
	if p.cacheEntries <= 0 {
		return nil, false
	}
	entry, ok := p.cache.Load(key)
	hit := ok && entry.signature == sig
	p.metrics.RecordCacheLookup(hit)
	if !hit {
		return nil, false
	}
	return cloneResults(entry.results), true
}

func (p *Planner) store(key uint64, sig string, results []solver.Result) {
	if p.cacheEntries <= 0 {
		return
	}
	if p.cache.Size() >= p.cacheEntries {
		p.logger.Debug("result cache full, not storing",
			zap.String("op", "planner.store"),
			zap.Int("entries", p.cacheEntries),
		)
		return
	}
	p.cache.Store(key, cacheEntry{signature: sig, results: results})
}

// signature encodes everything that determines a solve's result. Role names
// do not affect the result and are left out.
func signature(roles []solver.Role, target, limit int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(target))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(limit))
	for _, r := range roles {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(r.DailyCost))
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(r.Headcount))
	}
	return b.String()
}

func outcomeFor(results []solver.Result) string {
	if len(results) == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}

func cloneResults(results []solver.Result) []solver.Result {
	out := make([]solver.Result, len(results))
	for i, r := range results {
		out[i] = solver.Result{
			Variation: r.Variation,
			Days:      append([]int(nil), r.Days...),
		}
	}
	return out
}
