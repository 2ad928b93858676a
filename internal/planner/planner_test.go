package planner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iwvelando/staffing-planner/internal/metrics"
	"github.com/iwvelando/staffing-planner/pkg/solver"
	"github.com/iwvelando/staffing-planner/pkg/validation"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
	results  []int
	hits     int
	misses   int
}

func (r *recordingMetrics) RecordSolve(outcome string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingMetrics) RecordResults(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, count)
}

func (r *recordingMetrics) RecordCacheLookup(hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

var pairRoles = []solver.Role{
	{Name: "Lead", DailyCost: 1, Headcount: 1},
	{Name: "Technician", DailyCost: 1, Headcount: 1},
}

func TestPlan(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec))

	results, err := p.Plan(context.Background(), pairRoles, 6)
	require.NoError(t, err)
	require.Equal(t, [][]int{{3, 3}, {2, 4}, {1, 5}}, [][]int{results[0].Days, results[1].Days, results[2].Days})
	require.Equal(t, []string{metrics.OutcomeOK}, rec.outcomes)
	require.Equal(t, []int{3}, rec.results)
	require.Equal(t, 0, rec.hits)
	require.Equal(t, 1, rec.misses)
}

func TestPlanEmpty(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(nil, WithMetrics(rec))

	roles := []solver.Role{
		{Name: "a", DailyCost: 2, Headcount: 1},
		{Name: "b", DailyCost: 3, Headcount: 1},
	}
	results, err := p.Plan(context.Background(), roles, 12)
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
	require.Equal(t, []string{metrics.OutcomeEmpty}, rec.outcomes)
}

func TestPlanRejectsInvalidInput(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec))

	roles := []solver.Role{
		{Name: "a", DailyCost: 1, Headcount: 1},
		{Name: "a", DailyCost: 2, Headcount: 1},
	}
	_, err := p.Plan(context.Background(), roles, 10)
	require.ErrorIs(t, err, validation.ErrDuplicateRoleName)

	_, err = p.Plan(context.Background(), pairRoles, 0)
	require.ErrorIs(t, err, validation.ErrNonPositiveTarget)

	require.Equal(t, []string{metrics.OutcomeInvalid, metrics.OutcomeInvalid}, rec.outcomes)
}

func TestPlanCache(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec))

	first, err := p.Plan(context.Background(), pairRoles, 6)
	require.NoError(t, err)

	// Mutating a returned result must not leak into the cache.
	first[0].Days[0] = 99

	renamed := []solver.Role{
		{Name: "x", DailyCost: 1, Headcount: 1},
		{Name: "y", DailyCost: 1, Headcount: 1},
	}
	second, err := p.Plan(context.Background(), renamed, 6)
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, second[0].Days)
	require.Equal(t, 1, rec.hits)
	require.Equal(t, 1, rec.misses)

	_, err = p.Plan(context.Background(), pairRoles, 8)
	require.NoError(t, err)
	require.Equal(t, 2, rec.misses)
}

func TestPlanCacheDisabled(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec), WithCacheEntries(0))

	for i := 0; i < 2; i++ {
		_, err := p.Plan(context.Background(), pairRoles, 6)
		require.NoError(t, err)
	}
	require.Equal(t, 0, rec.hits)
	require.Equal(t, 0, rec.misses)
	require.Equal(t, []int{3, 3}, rec.results)
}

func TestPlanCacheBounded(t *testing.T) {
	p := New(zap.NewNop(), WithCacheEntries(1))

	_, err := p.Plan(context.Background(), pairRoles, 6)
	require.NoError(t, err)
	_, err = p.Plan(context.Background(), pairRoles, 8)
	require.NoError(t, err)

	require.Equal(t, 1, p.cache.Size())
}

func TestPlanLimit(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec), WithLimit(2))
	require.Equal(t, 2, p.Limit())

	_, err := p.Plan(context.Background(), pairRoles, 6)
	require.True(t, errors.Is(err, solver.ErrLimitExceeded))
	require.Equal(t, []string{metrics.OutcomeLimit}, rec.outcomes)

	results, err := p.Plan(context.Background(), pairRoles, 4)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestPlanCancelledContext(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Plan(ctx, pairRoles, 6)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{metrics.OutcomeCancelled}, rec.outcomes)
}

func TestSignatureIgnoresNames(t *testing.T) {
	a := []solver.Role{{Name: "a", DailyCost: 3, Headcount: 2}}
	b := []solver.Role{{Name: "b", DailyCost: 3, Headcount: 2}}
	require.Equal(t, signature(a, 10, 0), signature(b, 10, 0))
	require.NotEqual(t, signature(a, 10, 0), signature(a, 10, 5))
	require.NotEqual(t, signature(a, 10, 0), signature([]solver.Role{{DailyCost: 3, Headcount: 1}}, 10, 0))
}

// blockingSolve stands in for the solver: each call is counted, reported on
// started and held until release is closed.
type blockingSolve struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newBlockingSolve() *blockingSolve {
	return &blockingSolve{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (b *blockingSolve) solve(roles []solver.Role, target, limit int) ([]solver.Result, error) {
	b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return solver.SolveWithLimit(roles, target, limit)
}

type planOutcome struct {
	results []solver.Result
	err     error
}

func planAsync(ctx context.Context, p *Planner, roles []solver.Role, target int) <-chan planOutcome {
	out := make(chan planOutcome, 1)
	go func() {
		results, err := p.Plan(ctx, roles, target)
		out <- planOutcome{results: results, err: err}
	}()
	return out
}

func TestPlanSharesInFlightSearch(t *testing.T) {
	b := newBlockingSolve()
	p := New(zap.NewNop())
	p.solve = b.solve

	first := planAsync(context.Background(), p, pairRoles, 6)
	<-b.started
	second := planAsync(context.Background(), p, pairRoles, 6)
	time.Sleep(20 * time.Millisecond)
	close(b.release)

	for _, ch := range []<-chan planOutcome{first, second} {
		out := <-ch
		require.NoError(t, out.err)
		require.Len(t, out.results, 3)
		require.Equal(t, []int{3, 3}, out.results[0].Days)
	}
	require.Equal(t, int32(1), b.calls.Load())
}

func TestPlanRejoinsAbandonedSearch(t *testing.T) {
	b := newBlockingSolve()
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec))
	p.solve = b.solve

	ctx, cancel := context.WithCancel(context.Background())
	abandoned := planAsync(ctx, p, pairRoles, 6)
	<-b.started
	cancel()
	out := <-abandoned
	require.ErrorIs(t, out.err, context.Canceled)

	// The search is still running; an identical request waits for it, or
	// finds its cached result, instead of starting another.
	retry := planAsync(context.Background(), p, pairRoles, 6)
	time.Sleep(20 * time.Millisecond)
	close(b.release)

	out = <-retry
	require.NoError(t, out.err)
	require.Len(t, out.results, 3)
	require.Equal(t, int32(1), b.calls.Load())
}

func TestPlanMaxSearches(t *testing.T) {
	b := newBlockingSolve()
	rec := &recordingMetrics{}
	p := New(zap.NewNop(), WithMetrics(rec), WithMaxSearches(1))
	p.solve = b.solve

	running := planAsync(context.Background(), p, pairRoles, 6)
	<-b.started

	_, err := p.Plan(context.Background(), pairRoles, 8)
	require.ErrorIs(t, err, ErrBusy)
	require.Equal(t, int32(1), b.calls.Load())

	close(b.release)
	out := <-running
	require.NoError(t, out.err)

	// The slot is free again once the running search finishes.
	results, err := p.Plan(context.Background(), pairRoles, 8)
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Equal(t, int32(2), b.calls.Load())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Contains(t, rec.outcomes, metrics.OutcomeBusy)
}

func TestPlanMaxSearchesUnset(t *testing.T) {
	p := New(zap.NewNop())
	require.Nil(t, p.searches)

	p = New(zap.NewNop(), WithMaxSearches(3))
	require.NotNil(t, p.searches)
}
