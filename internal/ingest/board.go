package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"pathmatch/internal/config"
	"pathmatch/internal/domain/dedup"
	"pathmatch/internal/domain/job"
)

// Board describes one job board to scrape. ListURL is a template with
// a %d page placeholder; LinkPattern is the substring that marks a
// posting link on the listing page.
type Board struct {
	Name        string
	BaseURL     string
	ListURL     string
	LinkPattern string

	// Headless routes listing pages through a browser for boards that
	// render their listings with JavaScript.
	Headless bool
}

// Sink receives every normalized posting. In production this is the
// dedup usecase; tests plug in a recorder.
type Sink interface {
	Ingest(ctx context.Context, candidate job.Posting) (dedup.Outcome, error)
}

type Scraper struct {
	sink Sink
	cfg  config.IngestConfig
	log  *zap.Logger
}

func NewScraper(sink Sink, cfg config.IngestConfig, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Scraper{sink: sink, cfg: cfg, log: log}
}

// Scrape walks the board's listing pages, fetches each posting and
// routes it through the sink. Individual posting failures are logged
// and skipped; only a totally empty board is an error.
func (s *Scraper) Scrape(ctx context.Context, board Board, pages int) error {
	if s == nil || s.sink == nil {
		return fmt.Errorf("nil scraper/sink")
	}
	if pages <= 0 {
		pages = 1
	}

	pool := NewWorkerPool(s.cfg.Workers, s.cfg.Workers*2)
	pool.SetRateLimit(4)
	results := pool.Run(ctx)

	found := 0
	for page := 1; page <= pages; page++ {
		links, err := s.listingLinks(ctx, board, page)
		if err != nil {
			s.log.Warn("listing page failed",
				zap.String("board", board.Name),
				zap.Int("page", page),
				zap.Error(err))
			continue
		}
		found += len(links)

		for _, link := range links {
			link := link
			pool.Submit(func(ctx context.Context) error {
				raw, err := s.fetchDetail(ctx, board, link)
				if err != nil {
					return fmt.Errorf("detail %s: %w", link, err)
				}
				out, err := s.sink.Ingest(ctx, Normalize(raw))
				if err != nil {
					return fmt.Errorf("ingest %s: %w", link, err)
				}
				s.log.Debug("posting ingested",
					zap.String("board", board.Name),
					zap.String("url", link),
					zap.String("outcome", string(out.Kind)))
				return nil
			})
		}
	}
	pool.Close()

	failed := 0
	for res := range results {
		if res.Err != nil {
			failed++
			s.log.Warn("posting failed", zap.String("board", board.Name), zap.Error(res.Err))
		}
	}

	if found == 0 {
		return fmt.Errorf("board %s: no postings found", board.Name)
	}
	s.log.Info("board scraped",
		zap.String("board", board.Name),
		zap.Int("found", found),
		zap.Int("failed", failed))
	return nil
}

func (s *Scraper) listingLinks(ctx context.Context, board Board, page int) ([]string, error) {
	listURL := fmt.Sprintf(board.ListURL, page)
	if board.Headless || s.cfg.HeadlessMode {
		return s.listingLinksHeadless(ctx, board, listURL)
	}

	c := s.collector(board)

	links := make([]string, 0)
	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" || !strings.Contains(href, board.LinkPattern) {
			return
		}
		if abs := e.Request.AbsoluteURL(href); abs != "" {
			links = append(links, abs)
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return dedupLinks(links), nil
}

func (s *Scraper) fetchDetail(ctx context.Context, board Board, link string) (RawPosting, error) {
	c := s.collector(board)

	raw := RawPosting{Source: board.Name, URL: link, ExternalID: externalIDFromURL(link)}
	var reqErr error

	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if raw.Title == "" {
			raw.Title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(`[class*="company"], [data-company], [itemprop="hiringOrganization"]`, func(e *colly.HTMLElement) {
		if raw.Company == "" {
			raw.Company = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(`[class*="location"], [itemprop="jobLocation"]`, func(e *colly.HTMLElement) {
		if raw.Location == "" {
			raw.Location = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(`[class*="salary"], [itemprop="baseSalary"]`, func(e *colly.HTMLElement) {
		if raw.SalaryText == "" {
			raw.SalaryText = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML("body", func(e *colly.HTMLElement) {
		if raw.Description == "" {
			raw.Description = strings.TrimSpace(e.DOM.Find("body").Text())
		}
	})
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return RawPosting{}, ctx.Err()
	}
	if err := c.Visit(link); err != nil {
		return RawPosting{}, err
	}
	c.Wait()
	if reqErr != nil {
		return RawPosting{}, reqErr
	}
	if raw.Title == "" && raw.Description == "" {
		return RawPosting{}, fmt.Errorf("empty page")
	}
	return raw, nil
}

func (s *Scraper) collector(board Board) *colly.Collector {
	var c *colly.Collector
	if host := hostFromBaseURL(board.BaseURL); host != "" {
		c = colly.NewCollector(colly.AllowedDomains(host))
	} else {
		c = colly.NewCollector()
	}
	_ = c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       400 * time.Millisecond,
		RandomDelay: 850 * time.Millisecond,
	})
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", s.cfg.UserAgent)
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	return c
}

func dedupLinks(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, link := range in {
		u := normalizeURL(link)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func externalIDFromURL(link string) string {
	link = strings.TrimRight(strings.TrimSpace(link), "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}
