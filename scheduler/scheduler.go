package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"news-scraper/collector"
	"news-scraper/config"
	"news-scraper/db"
	"news-scraper/fetcher"
	"news-scraper/sources"
)

// Scheduler processes scraping requests from the database
type Scheduler struct {
	db     *db.DB
	cfg    *config.Config
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler
func NewScheduler(database *db.DB, cfg *config.Config) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		db:     database,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the scheduler in a goroutine
func (s *Scheduler) Start() {
	go s.run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cancel()
	log.Println("Scheduler stopped")
}

// run is the main scheduler loop
func (s *Scheduler) run() {
	ticker := time.NewTicker(5 * time.Second) // Check every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.processNextRequest()
		}
	}
}

// processNextRequest processes the next request with status 'created'
func (s *Scheduler) processNextRequest() {
	req, err := s.db.GetNextCreatedRequest()
	if err != nil {
		log.Printf("Error getting next request: %v\n", err)
		return
	}

	if req == nil {
		// No requests to process
		return
	}

	log.Printf("Processing request ID %d (%s/%s)\n", req.ID, req.Source, req.Community)

	if err := s.db.UpdateRequestStatus(req.ID, "in_progress"); err != nil {
		log.Printf("Error updating request status to in_progress: %v\n", err)
		return
	}

	f := fetcher.NewCollyFetcher(fetcher.Options{
		UserAgent: s.cfg.Fetch.UserAgent,
		Delay:     s.cfg.FetchDelay(),
		Timeout:   s.cfg.FetchTimeout(),
	})

	src, err := sources.New(req.Source, f)
	if err != nil {
		s.handleRequestError(req, err)
		return
	}

	coll := collector.New(s.cfg.Output.Dir)
	coll.SetLimits(s.cfg.Limits.MaxPageCeiling, s.cfg.Limits.MaxConsecutiveFailures)

	stop := collector.Stopping{PageLimit: req.PageLimit, DocumentLimit: req.DocumentLimit}
	res, err := coll.Collect(src, req.Community, stop)
	if err != nil {
		s.handleRequestError(req, err)
		return
	}

	outputFile := requestOutputFile(req)
	if err := coll.Persist(outputFile); err != nil {
		s.handleRequestError(req, err)
		return
	}

	if err := s.db.UpdateRequestResult(req.ID, res.Stored, res.Pages, len(res.Errors), outputFile); err != nil {
		log.Printf("Error updating request result: %v\n", err)
	}

	if err := s.db.UpdateRequestStatus(req.ID, "done"); err != nil {
		log.Printf("Error updating request status to done: %v\n", err)
		return
	}

	log.Printf("Request ID %d done: %d records, %d pages, %d non-fatal errors\n",
		req.ID, res.Stored, res.Pages, len(res.Errors))
}

// handleRequestError handles errors during request processing
func (s *Scheduler) handleRequestError(req *db.Request, err error) {
	log.Printf("Error processing request ID %d: %v\n", req.ID, err)
	if dbErr := s.db.UpdateRequestError(req.ID, err.Error()); dbErr != nil {
		log.Printf("Error recording request failure: %v\n", dbErr)
	}
}

// requestOutputFile names the dump for a queued request. Communities can
// contain path separators, so those are flattened first.
func requestOutputFile(req *db.Request) string {
	community := strings.NewReplacer("/", "-", " ", "-").Replace(req.Community)
	return fmt.Sprintf("%s_%s_%d.json", req.Source, community, req.ID)
}
