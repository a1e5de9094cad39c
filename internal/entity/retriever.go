package entity

import (
	"context"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/pssfleet/starbot/internal/observe"
)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for the fuzzy name
// fallback to accept a candidate when no exact match exists.
const fuzzyThreshold = 0.85

// SortKeyFunc produces a sortable string key for a record. The full family
// snapshot is supplied so keys may traverse cross-record references (e.g. the
// room upgrade parent chain).
type SortKeyFunc func(r Record, data *Data) string

// Retriever wraps a [Cache] for one entity family and layers name-based
// lookup on top of it: exact case-insensitive matching over the family's name
// field, with a Jaro-Winkler fuzzy fallback for typo tolerance, plus the
// family's canonical sort ordering for ambiguous matches.
type Retriever struct {
	cache     *Cache
	nameField string
	sortKey   SortKeyFunc
}

// NewRetriever creates a Retriever. nameField names the human-readable field
// used for lookups; sortKey may be nil, in which case ambiguous matches sort
// by their name field.
func NewRetriever(cache *Cache, nameField string, sortKey SortKeyFunc) *Retriever {
	return &Retriever{cache: cache, nameField: nameField, sortKey: sortKey}
}

// Cache returns the underlying cache (for health checks and warmup).
func (rt *Retriever) Cache() *Cache {
	return rt.cache
}

// Data returns the family snapshot, refreshing when stale.
func (rt *Retriever) Data(ctx context.Context) (*Data, error) {
	return rt.cache.Data(ctx)
}

// SortKey returns the record's sort key, falling back to the lower-cased name
// field when no SortKeyFunc is configured.
func (rt *Retriever) SortKey(r Record, data *Data) string {
	if rt.sortKey != nil {
		return rt.sortKey(r, data)
	}
	name, _ := r.String(rt.nameField)
	return strings.ToLower(name)
}

// IDsForPropertyValue returns the IDs of all records whose property equals
// value, compared case-insensitively. Result order is the insertion order of
// data. When returnOnFirst is set the scan short-circuits after the first
// match — used when exactness is guaranteed, e.g. short-name queries carrying
// a numeric disambiguator.
func IDsForPropertyValue(data *Data, property, value string, returnOnFirst bool) []string {
	var ids []string
	for _, id := range data.IDs() {
		rec, _ := data.Get(id)
		v, ok := rec.String(property)
		if !ok {
			continue
		}
		if strings.EqualFold(v, value) {
			ids = append(ids, id)
			if returnOnFirst {
				break
			}
		}
	}
	return ids
}

// ByName returns all records whose name field matches name exactly
// (case-insensitively). When nothing matches, a fuzzy pass compares the query
// against every name with Jaro-Winkler similarity and returns the best-scoring
// record above the acceptance threshold. A nil slice means no match.
func (rt *Retriever) ByName(ctx context.Context, name string) ([]Record, error) {
	data, err := rt.Data(ctx)
	if err != nil {
		return nil, err
	}

	ids := IDsForPropertyValue(data, rt.nameField, name, false)
	if len(ids) > 0 {
		observe.DefaultMetrics().RecordLookup(ctx, rt.cache.Family(), "exact")
		return recordsForIDs(data, ids), nil
	}

	if id, ok := rt.fuzzyMatch(data, name); ok {
		observe.DefaultMetrics().RecordLookup(ctx, rt.cache.Family(), "fuzzy")
		return recordsForIDs(data, []string{id}), nil
	}

	observe.DefaultMetrics().RecordLookup(ctx, rt.cache.Family(), "miss")
	return nil, nil
}

// Names returns every record's name field value in insertion order. Used for
// autocomplete suggestions.
func (rt *Retriever) Names(ctx context.Context) ([]string, error) {
	data, err := rt.Data(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, data.Len())
	for _, rec := range data.Records() {
		if name, ok := rec.String(rt.nameField); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// fuzzyMatch scans all names for the highest Jaro-Winkler similarity to the
// query and returns the owning ID when the score clears [fuzzyThreshold].
func (rt *Retriever) fuzzyMatch(data *Data, query string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return "", false
	}

	var (
		bestID    string
		bestScore float64
	)
	for _, id := range data.IDs() {
		rec, _ := data.Get(id)
		name, ok := rec.String(rt.nameField)
		if !ok || name == "" {
			continue
		}
		score := matchr.JaroWinkler(query, strings.ToLower(name), false)
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	if bestScore >= fuzzyThreshold {
		return bestID, true
	}
	return "", false
}

func recordsForIDs(data *Data, ids []string) []Record {
	recs := make([]Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := data.Get(id); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}
