// Package entity implements the generic reference-data layer shared by all
// game entity families (rooms, characters, collections, …): a timed cache per
// family with coalesced refreshes, name-based lookup with fuzzy fallback,
// dotted-path property resolution over heterogeneous records, level-dependent
// stat interpolation, and declarative long/short-form rendering driven by a
// static property table.
//
// Records are read-only snapshots owned by their [Cache]; consumers must not
// mutate them. Derived values are always produced as new strings.
package entity

import (
	"strconv"
	"strings"
)

// Record is one row of remote reference data: a mapping from field name to
// either a string value or a nested Record. Field presence is not guaranteed
// across records of the same family — the schema is implicit and driven by
// the remote source, so most subtype-specific fields are absent on most
// records.
type Record map[string]any

// String returns the string value of a plain (non-nested) field. The second
// return value reports whether the field exists and holds a string.
func (r Record) String(name string) (string, bool) {
	v, ok := r[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Sub returns the nested Record stored under name, if any.
func (r Record) Sub(name string) (Record, bool) {
	v, ok := r[name]
	if !ok {
		return nil, false
	}
	sub, ok := v.(Record)
	return sub, ok
}

// Resolve walks a dot-separated property path ("MissileDesign.Volley") and
// returns the string value at its end. Every intermediate segment must name a
// nested Record; if a segment is absent, or an intermediate value is not a
// record, Resolve reports absence instead of failing. Callers treat an absent
// result as "omit this property".
func (r Record) Resolve(path string) (string, bool) {
	cur := r
	for {
		dot := strings.IndexByte(path, '.')
		if dot < 0 {
			return cur.String(path)
		}
		sub, ok := cur.Sub(path[:dot])
		if !ok {
			return "", false
		}
		cur = sub
		path = path[dot+1:]
	}
}

// Float resolves path and parses the result as a float64.
func (r Record) Float(path string) (float64, bool) {
	s, ok := r.Resolve(path)
	if !ok || s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int resolves path and parses the result as an int.
func (r Record) Int(path string) (int, bool) {
	s, ok := r.Resolve(path)
	if !ok || s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
