package sources

import (
	"fmt"

	"news-scraper/models"
)

// Source is a per-site extraction strategy. Given a community (the
// source-scoped listing identifier) and a 1-based page number it fetches
// the corresponding listing page and returns the raw records found on it.
// An empty result with a nil error means the page had no articles; for
// document-count collection that signals the source is exhausted.
type Source interface {
	// Name is the publisher name attached to every record.
	Name() string

	// NativeIDField names the record field holding the site's own
	// article identifier.
	NativeIDField() string

	// Tags lists the fields kept when a record is stored.
	Tags() []string

	// ExtractPage fetches one listing page and returns its records.
	ExtractPage(community string, page int) ([]models.Record, error)
}

// ParseError reports a page whose HTML structure does not match the
// selectors a source expects.
type ParseError struct {
	Source string
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse %s: %s", e.Source, e.URL, e.Reason)
}

// UnimplementedSourceError is returned for a declared source that has no
// extraction strategy yet. It surfaces at construction, not at call time.
type UnimplementedSourceError struct {
	Source string
}

func (e *UnimplementedSourceError) Error() string {
	return fmt.Sprintf("source %q is not implemented", e.Source)
}
