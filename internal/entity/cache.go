package entity

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pssfleet/starbot/internal/observe"
)

// DefaultRefreshInterval is the refresh policy applied when a family does not
// override it. Reference data changes rarely; purchase catalogs and similar
// volatile families configure shorter intervals.
const DefaultRefreshInterval = 24 * time.Hour

// FetchFunc retrieves the current set of records for a family from the remote
// source. The returned records are parsed but not yet keyed.
type FetchFunc func(ctx context.Context) ([]Record, error)

// Cache owns exactly one [Data] snapshot for an entity family plus the
// metadata needed to refresh it: the declared key field, the refresh interval,
// and the last successful fetch time.
//
// Invariant: the snapshot is either nil ("not yet fetched", forcing a fetch)
// or a complete, internally consistent generation — never a mix of two
// generations. A failed refresh keeps the previous snapshot; stale data is
// served rather than failing the caller.
//
// Refreshes are coalesced: concurrent callers that find the snapshot stale
// share a single in-flight fetch instead of issuing duplicates.
type Cache struct {
	family   string
	keyField string
	interval time.Duration
	fetch    FetchFunc

	group singleflight.Group

	mu        sync.RWMutex
	snapshot  *Data
	fetchedAt time.Time
}

// NewCache creates a Cache for one entity family. keyField names the record
// field holding the unique ID; when empty, records are keyed by their index
// in the fetched payload (used for families without a natural key, such as
// prestige combination lists). interval <= 0 selects
// [DefaultRefreshInterval].
func NewCache(family, keyField string, interval time.Duration, fetch FetchFunc) *Cache {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Cache{
		family:   family,
		keyField: keyField,
		interval: interval,
		fetch:    fetch,
	}
}

// Family returns the family label used in logs and metrics.
func (c *Cache) Family() string {
	return c.family
}

// FetchedAt returns the time of the last successful fetch, zero if none.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// current returns the snapshot and whether it is still fresh.
func (c *Cache) current() (*Data, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil, false
	}
	return c.snapshot, time.Since(c.fetchedAt) < c.interval
}

// Data returns the family's snapshot, refreshing it first when it is stale or
// has never been fetched. On refresh failure the previous snapshot (if any)
// is served and the error is only logged; [ErrFetchFailed] is returned only
// when no fetch has ever succeeded.
func (c *Cache) Data(ctx context.Context) (*Data, error) {
	if snap, fresh := c.current(); fresh {
		return snap, nil
	}

	v, err, _ := c.group.Do("refresh", func() (any, error) {
		// Re-check under the flight: a caller that queued behind a completed
		// refresh must not trigger another one.
		if snap, fresh := c.current(); fresh {
			return snap, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Data), nil
}

// refresh performs one remote fetch and atomically swaps in the new snapshot.
// The fetch runs with a detached context so that cancellation of the
// initiating caller does not abort the fetch for other waiters.
func (c *Cache) refresh(ctx context.Context) (*Data, error) {
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	start := time.Now()
	records, err := c.fetch(fetchCtx)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if prev, _ := c.current(); prev != nil {
			observe.DefaultMetrics().RecordFetch(ctx, c.family, "stale", elapsed)
			slog.Warn("reference data refresh failed, serving stale snapshot",
				"family", c.family,
				"age", time.Since(c.FetchedAt()).Round(time.Second),
				"err", err)
			return prev, nil
		}
		observe.DefaultMetrics().RecordFetch(ctx, c.family, "error", elapsed)
		return nil, fmt.Errorf("%w: family %s: %v", ErrFetchFailed, c.family, err)
	}

	data := NewData()
	skipped := 0
	for i, rec := range records {
		id := strconv.Itoa(i)
		if c.keyField != "" {
			key, ok := rec.String(c.keyField)
			if !ok || key == "" {
				// Malformed record: drop it, keep the rest of the generation.
				skipped++
				continue
			}
			id = key
		}
		data.Put(id, rec)
	}
	if skipped > 0 {
		observe.DefaultMetrics().RecordSkippedRecords(ctx, c.family, int64(skipped))
		slog.Warn("dropped records missing key field",
			"family", c.family, "key", c.keyField, "dropped", skipped)
	}

	c.mu.Lock()
	c.snapshot = data
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	observe.DefaultMetrics().RecordFetch(ctx, c.family, "ok", elapsed)
	slog.Info("reference data refreshed",
		"family", c.family, "records", data.Len(), "took", time.Since(start).Round(time.Millisecond))
	return data, nil
}
