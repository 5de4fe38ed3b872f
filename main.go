package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"news-scraper/collector"
	"news-scraper/config"
	"news-scraper/db"
	"news-scraper/fetcher"
	"news-scraper/scheduler"
	"news-scraper/sheets"
	"news-scraper/sources"
)

func main() {
	// Parse command line arguments
	sourceName := flag.String("source", "", "Source to scrape: "+strings.Join(sources.Names(), ", "))
	community := flag.String("community", "", "Community or topic to scrape")
	pages := flag.Int("pages", collector.PageLimitUnset, "Number of pages to scrape (unset scrapes by document count)")
	docs := flag.Int("docs", 0, "Document count target when scraping by document count (default from config)")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	outFile := flag.String("out", "", "Output filename (default <source>_<community>.json)")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL to export results to (optional)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON file (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	browser := flag.Bool("browser", false, "Fetch pages with a headless browser instead of plain HTTP")
	enqueue := flag.Bool("enqueue", false, "Queue the request in the database instead of scraping now")
	daemon := flag.Bool("daemon", false, "Run as a daemon processing queued requests")
	flag.Parse()

	cfg := loadConfig(*configPath)

	if *daemon {
		runDaemon(cfg)
		return
	}

	if *sourceName == "" || *community == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *enqueue {
		runEnqueue(*sourceName, *community, *pages, *docs, cfg)
		return
	}

	runOnce(*sourceName, *community, *pages, *docs, *outFile, *spreadsheetURL, *credentialsPath, *browser, cfg)
}

// runOnce scrapes a single source/community and persists the result
func runOnce(sourceName, community string, pages, docs int, outFile, spreadsheetURL, credentialsPath string, browser bool, cfg *config.Config) {
	f, closeFetcher, err := newFetcher(browser, cfg)
	if err != nil {
		log.Fatalf("Failed to create fetcher: %v\n", err)
	}
	if closeFetcher != nil {
		defer func() {
			if err := closeFetcher(); err != nil {
				log.Printf("Warning: Failed to close browser: %v\n", err)
			}
		}()
	}

	src, err := sources.New(sourceName, f)
	if err != nil {
		log.Fatalf("Failed to create source: %v\n", err)
	}

	coll := collector.New(cfg.Output.Dir)
	coll.SetLimits(cfg.Limits.MaxPageCeiling, cfg.Limits.MaxConsecutiveFailures)

	if docs <= 0 {
		docs = cfg.Limits.DocumentLimit
	}
	stop := collector.Stopping{PageLimit: pages, DocumentLimit: docs}

	res, err := coll.Collect(src, community, stop)
	if err != nil {
		log.Fatalf("Collection failed: %v\n", err)
	}

	fmt.Printf("Stored %d records from %d pages\n", res.Stored, res.Pages)
	if len(res.Errors) > 0 {
		fmt.Printf("Encountered %d non-fatal errors:\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("  - %v\n", e)
		}
	}

	if outFile == "" {
		outFile = defaultOutputFile(sourceName, community)
	}
	if err := coll.Persist(outFile); err != nil {
		log.Fatalf("Persist failed: %v\n", err)
	}

	if spreadsheetURL != "" {
		exportToSheets(coll, src, spreadsheetURL, credentialsPath)
	}
}

// runEnqueue stores the request in the database for the daemon to pick up
func runEnqueue(sourceName, community string, pages, docs int, cfg *config.Config) {
	// Validate the source before queueing so unimplemented sources fail
	// here rather than inside the daemon.
	if _, err := sources.New(sourceName, fetcher.NewCollyFetcher(fetcher.Options{})); err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	database, err := db.NewDB()
	if err != nil {
		log.Fatalf("Error: Failed to initialize database: %v\n", err)
	}
	defer database.Close()

	if docs <= 0 {
		docs = cfg.Limits.DocumentLimit
	}

	req, err := database.CreateRequest(sourceName, community, pages, docs)
	if err != nil {
		log.Fatalf("Error: Failed to create request: %v\n", err)
	}

	fmt.Printf("Queued request ID %d (%s/%s)\n", req.ID, req.Source, req.Community)
}

// runDaemon processes queued requests until interrupted
func runDaemon(cfg *config.Config) {
	database, err := db.NewDB()
	if err != nil {
		log.Fatalf("Error: Failed to initialize database: %v\n", err)
	}
	defer database.Close()
	log.Println("Database initialized successfully")

	sched := scheduler.NewScheduler(database, cfg)
	sched.Start()
	defer sched.Stop()
	log.Println("Scheduler started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received %v, shutting down\n", sig)
}

// newFetcher builds the fetcher for CLI mode. The returned close func is
// nil for fetchers with nothing to clean up.
func newFetcher(browser bool, cfg *config.Config) (fetcher.Fetcher, func() error, error) {
	if browser {
		rf, err := fetcher.NewRodFetcher()
		if err != nil {
			return nil, nil, err
		}
		return rf, rf.Close, nil
	}

	cf := fetcher.NewCollyFetcher(fetcher.Options{
		UserAgent: cfg.Fetch.UserAgent,
		Delay:     cfg.FetchDelay(),
		Timeout:   cfg.FetchTimeout(),
	})
	return cf, nil, nil
}

// exportToSheets writes the collected store to Google Sheets
func exportToSheets(coll *collector.Collector, src sources.Source, spreadsheetURL, credentialsPath string) {
	spreadsheetID := sheets.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		log.Printf("Warning: Could not extract spreadsheet ID from URL: %s\n", spreadsheetURL)
		return
	}

	writer, err := sheets.NewWriter(spreadsheetID, credentialsPath)
	if err != nil {
		log.Printf("Warning: Failed to initialize Google Sheets writer: %v\n", err)
		return
	}

	if err := writer.WriteRecords(coll.Entries(), src.Tags(), true); err != nil {
		log.Printf("Warning: Failed to write to Google Sheets: %v\n", err)
		return
	}

	fmt.Printf("Exported %d records to Google Sheets\n", coll.Len())
}

// loadConfig loads configuration from file or returns defaults
func loadConfig(configPath string) *config.Config {
	var cfg *config.Config
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			log.Printf("Warning: Failed to load config file: %v. Using defaults.\n", err)
			cfg = config.GetDefaultConfig()
		}
	} else {
		log.Println("Config file not found. Using default configuration.")
		cfg = config.GetDefaultConfig()
	}
	return cfg
}

// defaultOutputFile names the dump for a CLI run
func defaultOutputFile(sourceName, community string) string {
	community = strings.NewReplacer("/", "-", " ", "-").Replace(community)
	return fmt.Sprintf("%s_%s.json", sourceName, community)
}
