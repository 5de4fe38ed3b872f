package models

// Field names the pipeline attaches to every record before storage.
const (
	FieldPublisher = "publisher"
	FieldStoreKey  = "store_key"
)

// Record holds one article's metadata as extracted from a listing page.
// Sources attach whatever fields the page provides; only the fields a
// source declares in its tag list survive projection into the store.
type Record map[string]string

// Has reports whether the field is present with a non-empty value.
func (r Record) Has(field string) bool {
	return r[field] != ""
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Project returns a copy of the record reduced to the given tags. Tags
// the record does not carry are skipped rather than stored empty.
func (r Record) Project(tags []string) Record {
	out := make(Record, len(tags))
	for _, tag := range tags {
		if v, ok := r[tag]; ok {
			out[tag] = v
		}
	}
	return out
}
