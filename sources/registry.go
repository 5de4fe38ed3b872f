package sources

import (
	"fmt"

	"news-scraper/fetcher"
)

// Declared source names accepted by New.
const (
	BuzzFeedName   = "buzzfeed"
	ClickHoleName  = "clickhole"
	UpworthyName   = "upworthy"
	UproxxName     = "uproxx"
	GoogleNewsName = "googlenews"
	NewYorkerName  = "newyorker"
)

// New builds the extraction strategy for the named source. Sources that
// are declared but have no strategy yet fail here with
// *UnimplementedSourceError instead of blowing up mid-collection.
func New(name string, f fetcher.Fetcher) (Source, error) {
	switch name {
	case BuzzFeedName:
		return NewBuzzFeed(f), nil
	case ClickHoleName:
		return NewClickHole(f), nil
	case UpworthyName, UproxxName, GoogleNewsName, NewYorkerName:
		return nil, &UnimplementedSourceError{Source: name}
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

// Names returns every declared source name, implemented or not.
func Names() []string {
	return []string{
		BuzzFeedName,
		ClickHoleName,
		UpworthyName,
		UproxxName,
		GoogleNewsName,
		NewYorkerName,
	}
}
