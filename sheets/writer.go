package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"news-scraper/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer handles writing stored records to Google Sheets
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewWriter creates a new Google Sheets writer
func NewWriter(spreadsheetID string, credentialsPath string) (*Writer, error) {
	ctx := context.Background()

	// Read credentials from file or environment variable
	var credsJSON []byte
	var err error

	if credentialsPath != "" {
		credsJSON, err = os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	} else {
		credsEnv := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS"))
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS environment variable is empty or not set")
		}
		credsJSON = []byte(credsEnv)
	}

	// Parse and validate JSON
	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON (check if JSON is properly formatted): %w", err)
	}

	// Validate that it's a service account credentials file
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file (type: service_account), got type: %v", creds["type"])
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// WriteRecords writes the store to the spreadsheet, one row per entry,
// with the tag list as the header. Entries are written in store-key
// order so repeated exports stay comparable.
// If clearFirst is true, clears existing data before writing.
func (w *Writer) WriteRecords(entries map[string]models.Record, tags []string, clearFirst bool) error {
	if len(entries) == 0 {
		log.Println("No records to write")
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var values [][]interface{}

	header := make([]interface{}, 0, len(tags))
	for _, tag := range tags {
		header = append(header, tag)
	}
	values = append(values, header)

	for _, k := range keys {
		rec := entries[k]
		row := make([]interface{}, 0, len(tags))
		for _, tag := range tags {
			row = append(row, rec[tag])
		}
		values = append(values, row)
	}

	range_ := "Sheet1!A1"

	if clearFirst {
		clearReq := &sheets.ClearValuesRequest{}
		_, err := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, range_, clearReq).Do()
		if err != nil {
			log.Printf("Warning: Failed to clear existing data: %v\n", err)
			// Continue anyway
		}
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := w.service.Spreadsheets.Values.Update(w.spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write to sheet: %w", err)
	}

	log.Printf("Wrote %d rows to spreadsheet %s\n", len(values), w.spreadsheetID)
	return nil
}

// ExtractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func ExtractSpreadsheetID(url string) string {
	re := regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	matches := re.FindStringSubmatch(url)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}
