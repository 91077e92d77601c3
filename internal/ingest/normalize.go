package ingest

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pathmatch/internal/domain/job"
)

// RawPosting is what a board scrape yields before normalization. Fields
// are free text exactly as found on the page.
type RawPosting struct {
	Source      string
	ExternalID  string
	URL         string
	Title       string
	Company     string
	Location    string
	Description string
	SalaryText  string
	PostedAt    *time.Time
}

var salaryRe = regexp.MustCompile(`(?i)([$€£]|usd|eur|gbp|idr)?\s*([\d][\d.,]{2,})\s*(?:k)?(?:\s*[-–to]+\s*([$€£]|usd|eur|gbp|idr)?\s*([\d][\d.,]{2,})\s*(k)?)?`)

var currencySymbols = map[string]string{
	"$": "USD", "usd": "USD",
	"€": "EUR", "eur": "EUR",
	"£": "GBP", "gbp": "GBP",
	"idr": "IDR",
}

// Normalize turns a raw scrape into a Posting ready for the dedup
// engine. The description hash is not stamped here; ingestion stamps it
// together with the first-seen date.
func Normalize(raw RawPosting) job.Posting {
	p := job.Posting{
		SourceName:  strings.ToLower(strings.TrimSpace(raw.Source)),
		ExternalID:  strings.TrimSpace(raw.ExternalID),
		URL:         normalizeURL(raw.URL),
		Title:       collapseSpace(raw.Title),
		Company:     collapseSpace(raw.Company),
		Location:    collapseSpace(raw.Location),
		Description: strings.TrimSpace(raw.Description),
		WorkModel:   inferWorkModel(raw.Title, raw.Location, raw.Description),
	}

	if raw.PostedAt != nil {
		t := raw.PostedAt.UTC()
		p.PostedDate = &t
	}

	if min, max, cur, ok := parseSalary(raw.SalaryText); ok {
		p.SalaryMin = min
		p.SalaryMax = max
		p.SalaryCurrency = cur
	}

	return p
}

// inferWorkModel scans the obvious remote/hybrid markers boards put in
// titles and location lines. Anything else stays unknown so the filter
// gives it the benefit of the doubt.
func inferWorkModel(title, location, description string) job.WorkModel {
	hay := strings.ToLower(title + " " + location)
	switch {
	case strings.Contains(hay, "remote"):
		return job.WorkModelRemote
	case strings.Contains(hay, "hybrid"):
		return job.WorkModelHybrid
	case strings.Contains(hay, "on-site"), strings.Contains(hay, "onsite"), strings.Contains(hay, "in office"):
		return job.WorkModelOnsite
	}

	desc := strings.ToLower(description)
	if strings.Contains(desc, "fully remote") || strings.Contains(desc, "100% remote") {
		return job.WorkModelRemote
	}
	return job.WorkModelUnknown
}

func parseSalary(text string) (*int, *int, string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, "", false
	}
	m := salaryRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil, "", false
	}

	lo, ok := parseAmount(m[2], strings.Contains(strings.ToLower(text), "k"))
	if !ok {
		return nil, nil, "", false
	}

	cur := currencySymbols[strings.ToLower(strings.TrimSpace(pickNonEmpty(m[1], m[3])))]

	if m[4] == "" {
		return &lo, nil, cur, true
	}
	hi, ok := parseAmount(m[4], m[5] != "")
	if !ok || hi < lo {
		return &lo, nil, cur, true
	}
	return &lo, &hi, cur, true
}

func parseAmount(s string, thousands bool) (int, bool) {
	s = strings.NewReplacer(",", "", ".", "").Replace(strings.TrimSpace(s))
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	if thousands && n < 1000 {
		n *= 1000
	}
	return n, true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return u
	}
	parsed.Fragment = ""
	return parsed.String()
}

func pickNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}
