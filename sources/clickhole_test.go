package sources

import (
	"testing"
)

const clickHoleListingHTML = `
<html><body>
<article id="article-100">
	<h2 class="headline">
First Headline
</h2>
</article>
<article id="article-200">
	<h2 class="headline">Second Headline</h2>
</article>
<article>
	<h2 class="headline">No ID</h2>
</article>
<article id="article-300">
	<p>no headline element</p>
</article>
</body></html>`

func TestClickHoleParseListing(t *testing.T) {
	c := NewClickHole(&stubFetcher{})
	records := c.parseListing(mustDoc(t, clickHoleListingHTML), "http://test")

	if len(records) != 2 {
		t.Fatalf("parseListing() returned %d records, want 2: %v", len(records), records)
	}

	if records[0]["name"] != "First Headline" {
		t.Errorf("first headline = %q, want %q (whitespace trimmed)", records[0]["name"], "First Headline")
	}
	if records[0][clickHoleIDField] != "article-100" {
		t.Errorf("first article id = %q, want %q", records[0][clickHoleIDField], "article-100")
	}
	if records[1]["name"] != "Second Headline" {
		t.Errorf("second headline = %q", records[1]["name"])
	}
}

func TestClickHoleParseListingEmptyPage(t *testing.T) {
	c := NewClickHole(&stubFetcher{})
	records := c.parseListing(mustDoc(t, `<html><body></body></html>`), "http://test")
	if len(records) != 0 {
		t.Errorf("parseListing() on empty page = %v, want none", records)
	}
}

func TestClickHoleExtractPage(t *testing.T) {
	f := &stubFetcher{html: clickHoleListingHTML}
	c := NewClickHole(f)

	records, err := c.ExtractPage("best", 2)
	if err != nil {
		t.Fatalf("ExtractPage() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("ExtractPage() returned %d records, want 2", len(records))
	}

	wantURL := "http://www.clickhole.com/features/best/?page=2"
	if len(f.urls) != 1 || f.urls[0] != wantURL {
		t.Errorf("fetched URLs = %v, want [%s]", f.urls, wantURL)
	}
}
