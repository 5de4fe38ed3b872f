package collector

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"news-scraper/models"
	"news-scraper/sources"
)

// Defaults applied when the caller leaves the corresponding knob unset.
const (
	DefaultDocumentLimit          = 1000
	DefaultMaxPageCeiling         = 500
	DefaultMaxConsecutiveFailures = 3

	// PageLimitUnset selects document-count collection.
	PageLimitUnset = -1

	storeKeySeparator = "-"
)

// Stopping selects how a Collect run decides it is done. The two modes
// are mutually exclusive: a PageLimit other than PageLimitUnset wins;
// otherwise collection runs until DocumentLimit records have been
// accumulated or the source runs dry.
type Stopping struct {
	PageLimit     int
	DocumentLimit int
}

// StopAfterPages scrapes exactly n pages.
func StopAfterPages(n int) Stopping {
	return Stopping{PageLimit: n, DocumentLimit: DefaultDocumentLimit}
}

// StopAfterDocuments scrapes pages until n records have been collected.
func StopAfterDocuments(n int) Stopping {
	return Stopping{PageLimit: PageLimitUnset, DocumentLimit: n}
}

// MissingFieldError reports a record that lacks a field required for
// tagging. The record is dropped; the rest of its page is kept.
type MissingFieldError struct {
	Source string
	Field  string
	Page   int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: record on page %d is missing required field %q", e.Source, e.Page, e.Field)
}

// Result reports the outcome of one Collect run.
type Result struct {
	Stored int     // records inserted (or overwritten) in the store
	Pages  int     // pages requested, including failed ones
	Errors []error // non-fatal errors encountered along the way
}

// Collector accumulates records from one or more sources into a keyed
// in-memory store and flushes it to disk on demand. It is not safe for
// concurrent use; runs are single-invocation batches.
type Collector struct {
	store  map[string]models.Record
	outDir string

	maxPageCeiling         int
	maxConsecutiveFailures int
}

// New creates an empty collector writing its output under outDir.
func New(outDir string) *Collector {
	return &Collector{
		store:                  make(map[string]models.Record),
		outDir:                 outDir,
		maxPageCeiling:         DefaultMaxPageCeiling,
		maxConsecutiveFailures: DefaultMaxConsecutiveFailures,
	}
}

// SetLimits overrides the loop ceilings. Values <= 0 keep the defaults.
func (c *Collector) SetLimits(maxPageCeiling, maxConsecutiveFailures int) {
	if maxPageCeiling > 0 {
		c.maxPageCeiling = maxPageCeiling
	}
	if maxConsecutiveFailures > 0 {
		c.maxConsecutiveFailures = maxConsecutiveFailures
	}
}

// Len returns the number of stored entries.
func (c *Collector) Len() int {
	return len(c.store)
}

// Entries returns a copy of the store for export or inspection.
func (c *Collector) Entries() map[string]models.Record {
	out := make(map[string]models.Record, len(c.store))
	for k, v := range c.store {
		out[k] = v.Clone()
	}
	return out
}

type extracted struct {
	page   int
	record models.Record
}

// Collect runs the source across the community's pages per the stopping
// config, tags every record with publisher and store_key, projects it to
// the source's tag list and inserts it into the store (last write wins
// on duplicate keys). Page failures are recoverable up to the
// consecutive-failure ceiling; a record missing its native id is dropped
// without losing its page. Collect may be called repeatedly, including
// with different sources, to accumulate into one store.
func (c *Collector) Collect(src sources.Source, community string, stop Stopping) (*Result, error) {
	if stop.DocumentLimit <= 0 {
		stop.DocumentLimit = DefaultDocumentLimit
	}

	res := &Result{}

	var raw []extracted
	var err error
	if stop.PageLimit != PageLimitUnset {
		raw, err = c.collectByPages(src, community, stop.PageLimit, res)
	} else {
		raw, err = c.collectByDocuments(src, community, stop.DocumentLimit, res)
	}
	if err != nil {
		return res, err
	}

	publisher := src.Name()
	idField := src.NativeIDField()
	tags := src.Tags()

	for _, ex := range raw {
		id := ex.record[idField]
		if id == "" {
			missing := &MissingFieldError{Source: publisher, Field: idField, Page: ex.page}
			res.Errors = append(res.Errors, missing)
			log.Printf("Warning: %v\n", missing)
			continue
		}

		rec := ex.record.Clone()
		rec[models.FieldPublisher] = publisher
		rec[models.FieldStoreKey] = publisher + storeKeySeparator + id

		c.store[rec[models.FieldStoreKey]] = rec.Project(tags)
		res.Stored++
	}

	log.Printf("%s: stored %d records from %d pages (%d non-fatal errors)\n",
		publisher, res.Stored, res.Pages, len(res.Errors))

	return res, nil
}

// collectByPages requests pages 1..pageLimit inclusive and concatenates
// their records.
func (c *Collector) collectByPages(src sources.Source, community string, pageLimit int, res *Result) ([]extracted, error) {
	if pageLimit < 1 {
		return nil, fmt.Errorf("page limit must be >= 1, got %d", pageLimit)
	}

	var raw []extracted
	consecutive := 0

	for page := 1; page <= pageLimit; page++ {
		res.Pages++
		records, err := src.ExtractPage(community, page)
		if err != nil {
			consecutive++
			res.Errors = append(res.Errors, err)
			log.Printf("Warning: %s: page %d failed: %v\n", src.Name(), page, err)
			if consecutive >= c.maxConsecutiveFailures {
				return nil, fmt.Errorf("%s: aborting after %d consecutive page failures: %w", src.Name(), consecutive, err)
			}
			continue
		}
		consecutive = 0

		for _, rec := range records {
			raw = append(raw, extracted{page: page, record: rec})
		}
	}

	return raw, nil
}

// collectByDocuments advances through pages until documentLimit records
// have been accumulated. An empty page means the source is exhausted; a
// page yielding fewer records than its siblings still advances. The page
// ceiling bounds sources that trickle records forever.
func (c *Collector) collectByDocuments(src sources.Source, community string, documentLimit int, res *Result) ([]extracted, error) {
	var raw []extracted
	count := 0
	consecutive := 0

	for page := 1; count < documentLimit; page++ {
		if page > c.maxPageCeiling {
			log.Printf("Warning: %s: reached page ceiling %d with %d records, stopping\n",
				src.Name(), c.maxPageCeiling, count)
			break
		}

		res.Pages++
		records, err := src.ExtractPage(community, page)
		if err != nil {
			consecutive++
			res.Errors = append(res.Errors, err)
			log.Printf("Warning: %s: page %d failed: %v\n", src.Name(), page, err)
			if consecutive >= c.maxConsecutiveFailures {
				return nil, fmt.Errorf("%s: aborting after %d consecutive page failures: %w", src.Name(), consecutive, err)
			}
			continue
		}
		consecutive = 0

		if len(records) == 0 {
			// Source exhausted before the document limit.
			break
		}

		for _, rec := range records {
			raw = append(raw, extracted{page: page, record: rec})
			count++
		}
	}

	return raw, nil
}

// Persist writes the store to filename inside the collector's output
// directory, creating the directory if needed. The store is encoded as a
// single JSON object keyed by store_key. The file is written to a temp
// file and renamed into place so a crash mid-write never leaves a
// truncated file behind.
func (c *Collector) Persist(filename string) error {
	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", c.outDir, err)
	}

	data, err := json.Marshal(c.store)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp, err := os.CreateTemp(c.outDir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	target := filepath.Join(c.outDir, filename)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move store into place: %w", err)
	}

	log.Printf("Persisted %d entries to %s\n", len(c.store), target)
	return nil
}
