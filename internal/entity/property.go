package entity

import "context"

// RenderContext carries per-request rendering inputs into transform
// functions.
type RenderContext struct {
	// Data is the family snapshot the record came from, for transforms that
	// traverse sibling records.
	Data *Data

	// Level is the requested level for leveled stat display; 0 means
	// unleveled (stats render as "min - max" ranges).
	Level int
}

// TransformFunc produces the display value for one property of a record. An
// empty return means the property does not apply to this record (absent
// source field, zero value, wrong subtype) and its line is omitted. Transforms
// are pure apart from cross-family cache reads, which is why they receive a
// context.
type TransformFunc func(ctx context.Context, r Record, rc RenderContext) string

// PropertyDef declares one line of an entity's rendered details: its label,
// where the value comes from, which entity subtypes it applies to, and in
// which output forms it appears. Definitions are static — declared once at
// startup and never mutated per request.
type PropertyDef struct {
	// Label is the display label. Ignored when IncludeLabel is false (the
	// name/description style lines that render bare).
	Label string

	// LabelOverrides maps an entity subtype to a replacement label, e.g.
	// "Max storage" becomes "Armor value" on Wall rooms. Subtypes not present
	// fall back to Label.
	LabelOverrides map[string]string

	// IncludeLabel controls whether the line renders as "Label: value" or as
	// the bare value.
	IncludeLabel bool

	// Transform produces the value. Required.
	Transform TransformFunc

	// Allowed lists the subtypes this property applies to; empty means all.
	Allowed []string

	// Forbidden lists subtypes this property never applies to.
	Forbidden []string

	// Short marks the property as part of the short (summary) form.
	Short bool

	// ShortOnly excludes the property from the long form and from embed
	// fields. Implies Short.
	ShortOnly bool
}

// label resolves the display label for the given subtype.
func (p *PropertyDef) label(subtype string) string {
	if alt, ok := p.LabelOverrides[subtype]; ok {
		return alt
	}
	return p.Label
}

// applies reports whether the property is rendered for a record of the given
// subtype: the subtype must be in Allowed (or Allowed must be empty) and must
// not be in Forbidden.
func (p *PropertyDef) applies(subtype string) bool {
	for _, f := range p.Forbidden {
		if f == subtype {
			return false
		}
	}
	if len(p.Allowed) == 0 {
		return true
	}
	for _, a := range p.Allowed {
		if a == subtype {
			return true
		}
	}
	return false
}

// Table is the declarative property table for one entity family: an ordered,
// immutable list of [PropertyDef] shared read-only across all requests.
type Table struct {
	// SubtypeField names the record field whose value selects label overrides
	// and applicability (e.g. "RoomType"). Empty disables subtype filtering.
	SubtypeField string

	// Props are rendered in declaration order.
	Props []PropertyDef
}
