package fetcher

import "fmt"

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch retrieves the raw HTML of a single page
	Fetch(url string) (string, error)
}

// FetchError reports a failed page fetch: a transport failure or a
// non-success HTTP status. Fetch failures are recoverable at page
// granularity; the collector skips the page and moves on.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
