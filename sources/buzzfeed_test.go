package sources

import (
	"errors"
	"strings"
	"testing"

	"news-scraper/fetcher"
	"news-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// stubFetcher returns canned HTML and records the URLs it was asked for.
type stubFetcher struct {
	html string
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(url string) (string, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

func TestIsPostNode(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected bool
	}{
		{
			name:     "id with post token and data attribute",
			html:     `<li id="post-123" rel:data='{"buzz_id":"123"}'></li>`,
			expected: true,
		},
		{
			name:     "post token embedded in longer id",
			html:     `<li id="buzz_post_123" rel:data='{}'></li>`,
			expected: true,
		},
		{
			name:     "missing data attribute",
			html:     `<li id="post-123"></li>`,
			expected: false,
		},
		{
			name:     "id without post token",
			html:     `<li id="sidebar-123" rel:data='{"buzz_id":"123"}'></li>`,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.html)
			sel := doc.Find("li").First()
			if sel.Length() == 0 {
				t.Fatal("test HTML has no li element")
			}
			if got := isPostNode(sel); got != tt.expected {
				t.Errorf("isPostNode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDecodeArticleData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Record
		wantErr  bool
	}{
		{
			name:     "string fields",
			input:    `{"buzz_id":"42","name":"Cats"}`,
			expected: models.Record{"buzz_id": "42", "name": "Cats"},
		},
		{
			name:     "numeric and bool fields stringified",
			input:    `{"buzz_id":42,"promoted":true}`,
			expected: models.Record{"buzz_id": "42", "promoted": "true"},
		},
		{
			name:     "nested values dropped",
			input:    `{"buzz_id":"42","meta":{"a":1}}`,
			expected: models.Record{"buzz_id": "42"},
		},
		{"empty attribute", "", nil, true},
		{"whitespace only", "   ", nil, true},
		{"malformed json", `{"buzz_id":`, nil, true},
		{"no usable fields", `{"meta":{"a":1}}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeArticleData(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeArticleData() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("decodeArticleData() = %v, want %v", got, tt.expected)
			}
			for k, v := range tt.expected {
				if got[k] != v {
					t.Errorf("decodeArticleData()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

const buzzFeedListingHTML = `
<html><body>
<div class="section Column1">
	<ul>
		<li id="post-1" rel:data='{"buzz_id":"1","name":"First Article"}'></li>
		<li id="sidebar-widget"></li>
		<li id="post-2" rel:data='{"buzz_id":"2","name":"Second Article"}'></li>
		<li id="post-3" rel:data='{broken'></li>
	</ul>
</div>
<div class="section Column2">
	<li id="post-9" rel:data='{"buzz_id":"9","name":"Wrong Column"}'></li>
</div>
</body></html>`

func TestBuzzFeedParseListing(t *testing.T) {
	b := NewBuzzFeed(&stubFetcher{})
	records := b.parseListing(mustDoc(t, buzzFeedListingHTML), "http://test")

	if len(records) != 2 {
		t.Fatalf("parseListing() returned %d records, want 2: %v", len(records), records)
	}
	if records[0]["buzz_id"] != "1" || records[0]["name"] != "First Article" {
		t.Errorf("first record = %v", records[0])
	}
	if records[1]["buzz_id"] != "2" || records[1]["name"] != "Second Article" {
		t.Errorf("second record = %v", records[1])
	}
}

func TestBuzzFeedParseListingNoContainer(t *testing.T) {
	b := NewBuzzFeed(&stubFetcher{})
	records := b.parseListing(mustDoc(t, `<html><body><p>nothing here</p></body></html>`), "http://test")
	if len(records) != 0 {
		t.Errorf("parseListing() on a page without the container = %v, want none", records)
	}
}

func TestBuzzFeedExtractPage(t *testing.T) {
	f := &stubFetcher{html: buzzFeedListingHTML}
	b := NewBuzzFeed(f)

	records, err := b.ExtractPage("books", 3)
	if err != nil {
		t.Fatalf("ExtractPage() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("ExtractPage() returned %d records, want 2", len(records))
	}

	wantURL := "http://www.buzzfeed.com/books?p=11&z=4POKDW&r=3"
	if len(f.urls) != 1 || f.urls[0] != wantURL {
		t.Errorf("fetched URLs = %v, want [%s]", f.urls, wantURL)
	}
}

func TestBuzzFeedExtractPageFetchError(t *testing.T) {
	fetchErr := &fetcher.FetchError{URL: "http://www.buzzfeed.com/books", StatusCode: 500}
	b := NewBuzzFeed(&stubFetcher{err: fetchErr})

	_, err := b.ExtractPage("books", 1)
	if err == nil {
		t.Fatal("ExtractPage() should propagate fetch errors")
	}
	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Errorf("error = %v, want *fetcher.FetchError", err)
	}
}
