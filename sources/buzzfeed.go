package sources

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"news-scraper/fetcher"
	"news-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	buzzFeedName    = "BuzzFeed"
	buzzFeedURL     = "http://www.buzzfeed.com/%s?p=11&z=4POKDW&r=%d"
	buzzFeedIDField = "buzz_id"

	// Container and predicate constants for locating article nodes.
	buzzContainerSelector = "div.section.Column1"
	buzzPostToken         = "post"
	buzzDataAttr          = "rel:data"
)

// BuzzFeed scrapes article listings from BuzzFeed community pages.
//
// Topic pages place every article under a "section Column1" <div>. The
// nodes carrying article data are the ones whose id contains "post" and
// that expose a rel:data attribute holding the article metadata as JSON.
type BuzzFeed struct {
	fetcher fetcher.Fetcher
}

// NewBuzzFeed creates a new BuzzFeed source
func NewBuzzFeed(f fetcher.Fetcher) *BuzzFeed {
	return &BuzzFeed{
		fetcher: f,
	}
}

func (b *BuzzFeed) Name() string          { return buzzFeedName }
func (b *BuzzFeed) NativeIDField() string { return buzzFeedIDField }

func (b *BuzzFeed) Tags() []string {
	return []string{buzzFeedIDField, "name", models.FieldStoreKey, models.FieldPublisher}
}

// ExtractPage fetches one listing page of the community and returns the
// records embedded in it.
func (b *BuzzFeed) ExtractPage(community string, page int) ([]models.Record, error) {
	url := fmt.Sprintf(buzzFeedURL, community, page)

	html, err := b.fetcher.Fetch(url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Source: buzzFeedName, URL: url, Reason: err.Error()}
	}

	return b.parseListing(doc, url), nil
}

// parseListing walks the article container and decodes the rel:data
// attribute of every matching node. A missing container means the
// community has no more pages, not a broken one. Nodes with malformed
// metadata are skipped; the rest of the page still parses.
func (b *BuzzFeed) parseListing(doc *goquery.Document, url string) []models.Record {
	var records []models.Record

	doc.Find(buzzContainerSelector).Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if !isPostNode(s) {
			return
		}

		data, _ := s.Attr(buzzDataAttr)
		rec, err := decodeArticleData(data)
		if err != nil {
			log.Printf("Warning: %s: skipping malformed %s attribute on %s: %v\n", buzzFeedName, buzzDataAttr, url, err)
			return
		}
		records = append(records, rec)
	})

	return records
}

// isPostNode reports whether a node carries embedded article data: it
// must have an id containing the post token and expose the rel:data
// attribute.
func isPostNode(s *goquery.Selection) bool {
	id, ok := s.Attr("id")
	if !ok || !strings.Contains(id, buzzPostToken) {
		return false
	}
	_, ok = s.Attr(buzzDataAttr)
	return ok
}

// decodeArticleData turns the embedded JSON attribute into a flat
// record. Listing metadata is flat in practice; nested values are
// dropped.
func decodeArticleData(raw string) (models.Record, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty attribute")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}

	rec := make(models.Record, len(fields))
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			rec[k] = val
		case float64:
			rec[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			rec[k] = strconv.FormatBool(val)
		}
	}
	if len(rec) == 0 {
		return nil, fmt.Errorf("no usable fields")
	}

	return rec, nil
}
