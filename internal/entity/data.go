package entity

// Data is one complete fetch generation for an entity family: an
// insertion-ordered mapping from the family's unique key value to the record
// it identifies. The order of IDs reflects the order returned by the remote
// source, which is not guaranteed to be any domain order.
//
// A Data snapshot is immutable once published by its [Cache]; a refresh
// replaces the whole snapshot atomically, never parts of it.
type Data struct {
	ids     []string
	records map[string]Record
}

// NewData creates an empty Data. Used by caches while assembling a snapshot
// and by tests building synthetic datasets.
func NewData() *Data {
	return &Data{records: make(map[string]Record)}
}

// Put appends a record under id, preserving insertion order. Putting an id
// that already exists overwrites the record without duplicating the id.
// Put must not be called on a snapshot that has been published.
func (d *Data) Put(id string, r Record) {
	if _, exists := d.records[id]; !exists {
		d.ids = append(d.ids, id)
	}
	d.records[id] = r
}

// Len returns the number of records.
func (d *Data) Len() int {
	return len(d.ids)
}

// IDs returns the record IDs in insertion order. The returned slice is shared;
// callers must not modify it.
func (d *Data) IDs() []string {
	return d.ids
}

// Get returns the record stored under id.
func (d *Data) Get(id string) (Record, bool) {
	r, ok := d.records[id]
	return r, ok
}

// Records returns the records in insertion order.
func (d *Data) Records() []Record {
	out := make([]Record, 0, len(d.ids))
	for _, id := range d.ids {
		out = append(out, d.records[id])
	}
	return out
}
