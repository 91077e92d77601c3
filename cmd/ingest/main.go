package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"pathmatch/internal/app"
	"pathmatch/internal/config"
	"pathmatch/internal/ingest"
)

func main() {
	board := flag.String("board", "", "board name, e.g. weworkremotely")
	base := flag.String("base", "", "board base URL")
	list := flag.String("list", "", "listing URL template with a %d page placeholder")
	pattern := flag.String("pattern", "/job/", "substring that marks a posting link")
	pages := flag.Int("pages", 1, "number of listing pages to walk")
	headless := flag.Bool("headless", false, "render listing pages in a headless browser")
	flag.Parse()

	if strings.TrimSpace(*board) == "" || strings.TrimSpace(*base) == "" || strings.TrimSpace(*list) == "" {
		log.Fatalf("provide -board, -base and -list")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.App)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	container, err := app.NewContainer(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		_ = container.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	scraper := ingest.NewScraper(container.Dedup, cfg.Ingest, logger)
	err = scraper.Scrape(ctx, ingest.Board{
		Name:        strings.ToLower(strings.TrimSpace(*board)),
		BaseURL:     strings.TrimSpace(*base),
		ListURL:     strings.TrimSpace(*list),
		LinkPattern: *pattern,
		Headless:    *headless,
	}, *pages)
	if err != nil {
		log.Fatalf("scrape failed: %v", err)
	}
}
