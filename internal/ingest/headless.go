package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// listingLinksHeadless renders the listing page in a headless browser
// and pulls posting links out of the live DOM. Used for boards whose
// listings do not exist in the initial HTML.
func (s *Scraper) listingLinksHeadless(ctx context.Context, board Board, listURL string) ([]string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(s.cfg.UserAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var hrefs []string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(listURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(
			fmt.Sprintf(`Array.from(document.querySelectorAll('a[href]'))
				.map(a => a.getAttribute('href'))
				.filter(h => h && h.includes(%q))`, board.LinkPattern),
			&hrefs,
		),
	)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(board.BaseURL, "/")
	links := make([]string, 0, len(hrefs))
	for _, h := range hrefs {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if strings.HasPrefix(h, "/") {
			h = base + h
		} else if !strings.HasPrefix(h, "http://") && !strings.HasPrefix(h, "https://") {
			h = base + "/" + h
		}
		links = append(links, h)
	}

	links = dedupLinks(links)
	if len(links) == 0 {
		return nil, fmt.Errorf("no posting links found (headless)")
	}
	return links, nil
}
