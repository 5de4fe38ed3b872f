package db

import (
	"database/sql"
	"time"
)

// Request represents a queued scraping request
type Request struct {
	ID              int
	Source          string
	Community       string
	PageLimit       int
	DocumentLimit   int
	Status          string // "created", "in_progress", "done", "failed"
	DocumentsStored int
	PagesFetched    int
	ErrorCount      int
	OutputFile      sql.NullString
	LastError       sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateRequest queues a new scraping request
func (db *DB) CreateRequest(source, community string, pageLimit, documentLimit int) (*Request, error) {
	var req Request
	err := db.conn.QueryRow(`
		INSERT INTO scrape_requests (source, community, page_limit, document_limit, status)
		VALUES ($1, $2, $3, $4, 'created')
		RETURNING id, source, community, page_limit, document_limit, status,
			documents_stored, pages_fetched, error_count, output_file, last_error, created_at, updated_at
	`, source, community, pageLimit, documentLimit).Scan(
		&req.ID, &req.Source, &req.Community, &req.PageLimit, &req.DocumentLimit, &req.Status,
		&req.DocumentsStored, &req.PagesFetched, &req.ErrorCount, &req.OutputFile, &req.LastError,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetNextCreatedRequest gets the oldest request with status 'created'
func (db *DB) GetNextCreatedRequest() (*Request, error) {
	var req Request
	err := db.conn.QueryRow(`
		SELECT id, source, community, page_limit, document_limit, status,
			documents_stored, pages_fetched, error_count, output_file, last_error, created_at, updated_at
		FROM scrape_requests
		WHERE status = 'created'
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`).Scan(
		&req.ID, &req.Source, &req.Community, &req.PageLimit, &req.DocumentLimit, &req.Status,
		&req.DocumentsStored, &req.PagesFetched, &req.ErrorCount, &req.OutputFile, &req.LastError,
		&req.CreatedAt, &req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus updates the status of a request
func (db *DB) UpdateRequestStatus(id int, status string) error {
	_, err := db.conn.Exec(`
		UPDATE scrape_requests
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, status, id)
	return err
}

// UpdateRequestResult records the outcome of a finished run
func (db *DB) UpdateRequestResult(id, documentsStored, pagesFetched, errorCount int, outputFile string) error {
	_, err := db.conn.Exec(`
		UPDATE scrape_requests
		SET documents_stored = $1, pages_fetched = $2, error_count = $3, output_file = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
	`, documentsStored, pagesFetched, errorCount, outputFile, id)
	return err
}

// UpdateRequestError marks a request failed and records the error
func (db *DB) UpdateRequestError(id int, lastError string) error {
	_, err := db.conn.Exec(`
		UPDATE scrape_requests
		SET status = 'failed', last_error = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, lastError, id)
	return err
}
