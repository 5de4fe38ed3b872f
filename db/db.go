package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection
func NewDB() (*DB, error) {
	// Get connection string from environment variable
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		// Try to build from individual components
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "news_scraper")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "news_scraper")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=news_scraper",
			host, port, user, password, dbname, sslmode)
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables if they don't exist
func (db *DB) initSchema() error {
	// The schema should already exist; this is just a safety check.
	_, err := db.conn.Exec(`CREATE SCHEMA IF NOT EXISTS news_scraper`)
	if err != nil {
		log.Printf("Note: Could not create schema (may already exist): %v\n", err)
	}

	_, err = db.conn.Exec(`SET search_path TO news_scraper`)
	if err != nil {
		return fmt.Errorf("failed to set search path: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS scrape_requests (
			id SERIAL PRIMARY KEY,
			source VARCHAR(50) NOT NULL,
			community TEXT NOT NULL,
			page_limit INTEGER NOT NULL DEFAULT -1,
			document_limit INTEGER NOT NULL DEFAULT 1000,
			status VARCHAR(20) NOT NULL DEFAULT 'created',
			documents_stored INTEGER NOT NULL DEFAULT 0,
			pages_fetched INTEGER NOT NULL DEFAULT 0,
			error_count INTEGER NOT NULL DEFAULT 0,
			output_file VARCHAR(255),
			last_error TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT valid_status CHECK (status IN ('created', 'in_progress', 'done', 'failed'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create scrape_requests table: %w", err)
	}

	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_scrape_requests_status ON scrape_requests(status)`)
	if err != nil {
		log.Printf("Warning: Failed to create index on scrape_requests.status: %v\n", err)
	}

	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_scrape_requests_source ON scrape_requests(source)`)
	if err != nil {
		log.Printf("Warning: Failed to create index on scrape_requests.source: %v\n", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}

// GetConn returns the underlying database connection
func (db *DB) GetConn() *sql.DB {
	return db.conn
}
