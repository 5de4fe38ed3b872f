package fetcher

import (
	"time"

	"github.com/gocolly/colly/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options control the HTTP behavior shared by every fetch.
type Options struct {
	UserAgent string
	Delay     time.Duration // pause between requests to the same domain
	Timeout   time.Duration // per-request timeout
}

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	collector *colly.Collector
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(opts Options) *CollyFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	c := colly.NewCollector(
		colly.UserAgent(opts.UserAgent),
		colly.AllowURLRevisit(),
	)

	if opts.Timeout > 0 {
		c.SetRequestTimeout(opts.Timeout)
	}

	if opts.Delay > 0 {
		c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Parallelism: 1,
			Delay:       opts.Delay,
		})
	}

	return &CollyFetcher{
		collector: c,
	}
}

// Fetch implements the Fetcher interface. A transport failure or a
// non-2xx status is returned as a *FetchError.
func (cf *CollyFetcher) Fetch(url string) (string, error) {
	var body string
	var fetchErr *FetchError

	// Clone keeps the collector settings but starts with no callbacks
	// from earlier fetches.
	c := cf.collector.Clone()

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		fe := &FetchError{URL: url, Err: err}
		if r != nil {
			fe.StatusCode = r.StatusCode
		}
		fetchErr = fe
	})

	if err := c.Visit(url); err != nil {
		if fetchErr != nil {
			return "", fetchErr
		}
		return "", &FetchError{URL: url, Err: err}
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}

	return body, nil
}
