package sources

import (
	"fmt"
	"log"
	"strings"

	"news-scraper/fetcher"
	"news-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	clickHoleName    = "ClickHole"
	clickHoleURL     = "http://www.clickhole.com/features/%s/?page=%d"
	clickHoleIDField = "article_id"
)

// ClickHole scrapes article listings from ClickHole feature pages.
//
// ClickHole does not embed a metadata blob per article. Each listing is
// an <article> element whose own id attribute is the article id, with
// the display name in a nested <h2 class="headline">. Headlines arrive
// wrapped in line-break characters, so the text is whitespace-trimmed.
type ClickHole struct {
	fetcher fetcher.Fetcher
}

// NewClickHole creates a new ClickHole source
func NewClickHole(f fetcher.Fetcher) *ClickHole {
	return &ClickHole{
		fetcher: f,
	}
}

func (c *ClickHole) Name() string          { return clickHoleName }
func (c *ClickHole) NativeIDField() string { return clickHoleIDField }

func (c *ClickHole) Tags() []string {
	return []string{"name", models.FieldPublisher, models.FieldStoreKey, clickHoleIDField}
}

// ExtractPage fetches one feature page of the community and returns one
// record per article listing found on it.
func (c *ClickHole) ExtractPage(community string, page int) ([]models.Record, error) {
	url := fmt.Sprintf(clickHoleURL, community, page)

	html, err := c.fetcher.Fetch(url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Source: clickHoleName, URL: url, Reason: err.Error()}
	}

	return c.parseListing(doc, url), nil
}

// parseListing collects every <article> element on the page. Articles
// missing an id or a headline are skipped; their siblings still parse.
func (c *ClickHole) parseListing(doc *goquery.Document, url string) []models.Record {
	var records []models.Record

	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || id == "" {
			log.Printf("Warning: %s: skipping article without id attribute on %s\n", clickHoleName, url)
			return
		}

		headline := s.Find("h2.headline").First()
		if headline.Length() == 0 {
			log.Printf("Warning: %s: article %s has no headline on %s\n", clickHoleName, id, url)
			return
		}

		records = append(records, models.Record{
			"name":           strings.TrimSpace(headline.Text()),
			clickHoleIDField: id,
		})
	})

	return records
}
