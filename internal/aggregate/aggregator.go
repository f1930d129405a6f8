// Package aggregate merges internal-store jobs with normalized external
// feeds into one filtered, ranked, paginated result set.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/OctavioMinteguia/jobhub/internal/model"
	"github.com/OctavioMinteguia/jobhub/internal/normalize"
	"github.com/OctavioMinteguia/jobhub/internal/search"
)

// Pagination bounds. A limit outside [1, MaxLimit] resets to DefaultLimit.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Result is one page of an aggregated search.
type Result struct {
	Jobs    []model.Job
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// Aggregator fans out to the store and every configured external source,
// then filters, ranks and paginates the combined set.
type Aggregator struct {
	store       model.JobStore
	sources     []model.Source
	normalizers map[string]*normalize.Normalizer
	timeout     time.Duration
	logger      *slog.Logger
}

// New wires an Aggregator. timeout bounds each external-source fetch.
func New(store model.JobStore, sources []model.Source, timeout time.Duration, logger *slog.Logger) *Aggregator {
	normalizers := make(map[string]*normalize.Normalizer, len(sources))
	for _, src := range sources {
		normalizers[src.Name()] = normalize.New(src.Name())
	}
	return &Aggregator{
		store:       store,
		sources:     sources,
		normalizers: normalizers,
		timeout:     timeout,
		logger:      logger,
	}
}

// Search runs one aggregation pass. Structured filters are pushed down to the
// store; the predicate engine then re-checks every record, internal included,
// so free text and source scope apply uniformly. Results are ordered by
// createdAt descending across both sources: interleaving is by recency only,
// never by provenance. A failing external source contributes zero records and
// never fails the request; a failing store does.
func (a *Aggregator) Search(ctx context.Context, q search.Query, limit, offset int) (Result, error) {
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		combined []model.Job
		storeErr error
	)

	// Internal and external fetches are independent read-only operations;
	// run them concurrently purely as a latency optimization.
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Unbounded fetch: pagination happens after the merge, otherwise
		// store-side slicing would drop rows that belong on earlier pages
		// of the combined ordering.
		jobs, err := a.store.FindByCriteria(ctx, q.Criteria(), 0, 0)
		if err != nil {
			storeErr = fmt.Errorf("fetching internal jobs: %w", err)
			return
		}
		mu.Lock()
		combined = append(combined, jobs...)
		mu.Unlock()
	}()

	for _, src := range a.sources {
		wg.Add(1)
		go func(src model.Source) {
			defer wg.Done()
			jobs := a.fetchExternal(ctx, src)
			mu.Lock()
			combined = append(combined, jobs...)
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	if storeErr != nil {
		return Result{}, storeErr
	}

	filtered := combined[:0:0]
	for _, job := range combined {
		if search.Matches(job, q) {
			filtered = append(filtered, job)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	page := []model.Job{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = filtered[offset:end]
	}

	return Result{
		Jobs:    page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

// fetchExternal pulls one source's records and normalizes them, absorbing
// every failure mode into an empty contribution. One flaky upstream must
// never take down search.
func (a *Aggregator) fetchExternal(ctx context.Context, src model.Source) []model.Job {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if !src.IsAvailable(ctx) {
		a.logger.Warn("external source unavailable, skipping", "source", src.Name())
		return nil
	}

	raws, err := src.FetchRaw(ctx)
	if err != nil {
		a.logger.Warn("external source fetch failed", "source", src.Name(), "error", err)
		return nil
	}

	norm := a.normalizers[src.Name()]
	jobs := make([]model.Job, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		if job := norm.Normalize(raw); job != nil {
			jobs = append(jobs, *job)
		} else {
			dropped++
		}
	}

	a.logger.Debug("external source fetched",
		"source", src.Name(),
		"records", len(raws),
		"usable", len(jobs),
		"dropped", dropped,
	)
	return jobs
}
