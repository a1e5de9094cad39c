package entity

import (
	"context"
	"sort"
)

// EmptyLine separates long-form blocks when several candidates are rendered.
// Discord collapses truly empty lines, hence the zero-width-ish marker.
const EmptyLine = "​"

// ShortFormThreshold is the default number of ambiguous matches above which
// rendering switches from long form per candidate to the compact short form,
// to avoid flooding chat output.
const ShortFormThreshold = 3

// Field is one embed-shaped output line: a name/value pair. The Discord layer
// maps Fields onto embed fields; the text path joins them into lines.
type Field struct {
	Name  string
	Value string
}

// Renderer turns entity records into display lines using a declarative
// [Table]. A Renderer is immutable and safe for concurrent use.
type Renderer struct {
	table     *Table
	retriever *Retriever
	threshold int
}

// NewRenderer creates a Renderer over the given table. The retriever supplies
// the sort ordering for ambiguous matches. threshold <= 0 selects
// [ShortFormThreshold].
func NewRenderer(table *Table, retriever *Retriever, threshold int) *Renderer {
	if threshold <= 0 {
		threshold = ShortFormThreshold
	}
	return &Renderer{table: table, retriever: retriever, threshold: threshold}
}

// subtype extracts the record's subtype per the table's SubtypeField.
func (rd *Renderer) subtype(r Record) string {
	if rd.table.SubtypeField == "" {
		return ""
	}
	s, _ := r.String(rd.table.SubtypeField)
	return s
}

// renderProps renders the applicable properties of one record, long or short
// form, in table declaration order. Properties whose transform yields an
// empty value are skipped.
func (rd *Renderer) renderProps(ctx context.Context, r Record, rc RenderContext, short bool) []string {
	subtype := rd.subtype(r)
	var lines []string
	for i := range rd.table.Props {
		p := &rd.table.Props[i]
		if short && !p.Short && !p.ShortOnly {
			continue
		}
		if !short && p.ShortOnly {
			continue
		}
		if !p.applies(subtype) {
			continue
		}
		value := p.Transform(ctx, r, rc)
		if value == "" {
			continue
		}
		if p.IncludeLabel {
			lines = append(lines, p.label(subtype)+": "+value)
		} else {
			lines = append(lines, value)
		}
	}
	return lines
}

// RenderLong renders one record in full long form.
func (rd *Renderer) RenderLong(ctx context.Context, r Record, rc RenderContext) []string {
	return rd.renderProps(ctx, r, rc, false)
}

// RenderShort renders one record's designated summary subset.
func (rd *Renderer) RenderShort(ctx context.Context, r Record, rc RenderContext) []string {
	return rd.renderProps(ctx, r, rc, true)
}

// RenderAll renders a set of candidate records that matched one name query.
// Candidates are ordered by the family's sort key. A single candidate renders
// in long form; up to the threshold, each candidate renders in long form
// separated by [EmptyLine]; beyond the threshold every candidate renders in
// short form instead.
func (rd *Renderer) RenderAll(ctx context.Context, recs []Record, rc RenderContext) []string {
	sorted := rd.Sort(recs, rc.Data)

	if len(sorted) == 1 {
		return rd.RenderLong(ctx, sorted[0], rc)
	}

	bigSet := len(sorted) > rd.threshold
	var lines []string
	for i, rec := range sorted {
		if bigSet {
			lines = append(lines, rd.RenderShort(ctx, rec, rc)...)
			continue
		}
		lines = append(lines, rd.RenderLong(ctx, rec, rc)...)
		if i < len(sorted)-1 {
			lines = append(lines, EmptyLine)
		}
	}
	return lines
}

// RenderFields renders one record as embed-shaped name/value fields: labeled
// properties become fields, unlabeled ones (name, description) are returned
// with an empty Name so the caller can place them as title and description.
func (rd *Renderer) RenderFields(ctx context.Context, r Record, rc RenderContext) []Field {
	subtype := rd.subtype(r)
	var fields []Field
	for i := range rd.table.Props {
		p := &rd.table.Props[i]
		if p.ShortOnly || !p.applies(subtype) {
			continue
		}
		value := p.Transform(ctx, r, rc)
		if value == "" {
			continue
		}
		name := ""
		if p.IncludeLabel {
			name = p.label(subtype)
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields
}

// Sort orders records by the family's sort key. The input slice is not
// modified. Ordering is deterministic for any input order.
func (rd *Renderer) Sort(recs []Record, data *Data) []Record {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rd.retriever.SortKey(sorted[i], data) < rd.retriever.SortKey(sorted[j], data)
	})
	return sorted
}
