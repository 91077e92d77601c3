package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"pathmatch/internal/config"
	"pathmatch/internal/domain/dedup"
	"pathmatch/internal/domain/job"
)

type recordingSink struct {
	mu       sync.Mutex
	ingested []job.Posting
}

func (s *recordingSink) Ingest(_ context.Context, candidate job.Posting) (dedup.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingested = append(s.ingested, candidate)
	return dedup.Outcome{Kind: dedup.OutcomeCreateNew, CanonicalID: candidate.ID}, nil
}

func testBoardServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/job/101">Backend Engineer</a>
			<a href="/job/102">Platform Engineer</a>
			<a href="/job/101">Backend Engineer (dup)</a>
			<a href="/about">About us</a>
		</body></html>`)
	})
	mux.HandleFunc("/job/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<h1>Backend Engineer %[1]s</h1>
			<div class="company-name">Acme</div>
			<div class="location">Remote</div>
			<div class="salary">$90,000 - $120,000</div>
			<p>Build and operate Go services for the Acme platform.</p>
		</body></html>`, r.URL.Path)
	})
	return httptest.NewServer(mux)
}

func TestScrapeIngestsEachListingOnce(t *testing.T) {
	srv := testBoardServer(t)
	defer srv.Close()

	sink := &recordingSink{}
	s := NewScraper(sink, config.IngestConfig{Workers: 2, UserAgent: "test-agent"}, zap.NewNop())

	board := Board{
		Name:        "boarda",
		BaseURL:     srv.URL,
		ListURL:     srv.URL + "/jobs?page=%d",
		LinkPattern: "/job/",
	}
	if err := s.Scrape(context.Background(), board, 1); err != nil {
		t.Fatalf("Scrape: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.ingested) != 2 {
		t.Fatalf("expected 2 ingested postings, got %d", len(sink.ingested))
	}
	for _, p := range sink.ingested {
		if p.SourceName != "boarda" {
			t.Fatalf("source = %q", p.SourceName)
		}
		if p.Title == "" || p.Company != "Acme" {
			t.Fatalf("detail fields not extracted: %+v", p)
		}
		if p.WorkModel != job.WorkModelRemote {
			t.Fatalf("remote location must map to remote work model, got %q", p.WorkModel)
		}
		if p.SalaryMin == nil || *p.SalaryMin != 90000 {
			t.Fatalf("salary must be parsed, got %v", p.SalaryMin)
		}
	}
}

func TestScrapeEmptyBoardFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
	}))
	defer srv.Close()

	s := NewScraper(&recordingSink{}, config.IngestConfig{Workers: 1}, zap.NewNop())
	board := Board{
		Name:        "boarda",
		BaseURL:     srv.URL,
		ListURL:     srv.URL + "/jobs?page=%d",
		LinkPattern: "/job/",
	}
	if err := s.Scrape(context.Background(), board, 1); err == nil {
		t.Fatal("empty board must report an error")
	}
}

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(4, 8)
	results := pool.Run(context.Background())

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 20; i++ {
		pool.Submit(func(ctx context.Context) error {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	got := 0
	for res := range results {
		if res.Err != nil {
			t.Fatalf("unexpected task error: %v", res.Err)
		}
		got++
	}
	if got != 20 || ran != 20 {
		t.Fatalf("expected 20 results, got %d (ran %d)", got, ran)
	}
}
