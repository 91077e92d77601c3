package ingest

import (
	"testing"

	"pathmatch/internal/domain/job"
)

func TestParseSalaryRange(t *testing.T) {
	min, max, cur, ok := parseSalary("$90,000 - $120,000 per year")
	if !ok {
		t.Fatal("range must parse")
	}
	if min == nil || *min != 90000 {
		t.Fatalf("min = %v", min)
	}
	if max == nil || *max != 120000 {
		t.Fatalf("max = %v", max)
	}
	if cur != "USD" {
		t.Fatalf("currency = %q", cur)
	}
}

func TestParseSalarySingleValue(t *testing.T) {
	min, max, _, ok := parseSalary("up to 85,000")
	if !ok || min == nil || *min != 85000 {
		t.Fatalf("single value must parse as min, got min=%v ok=%v", min, ok)
	}
	if max != nil {
		t.Fatalf("single value must leave max nil, got %v", *max)
	}
}

func TestParseSalaryEmpty(t *testing.T) {
	if _, _, _, ok := parseSalary("competitive"); ok {
		t.Fatal("prose without numbers must not parse")
	}
	if _, _, _, ok := parseSalary(""); ok {
		t.Fatal("empty text must not parse")
	}
}

func TestInferWorkModel(t *testing.T) {
	cases := []struct {
		title, location, desc string
		want                  job.WorkModel
	}{
		{"Backend Engineer (Remote)", "", "", job.WorkModelRemote},
		{"Backend Engineer", "Hybrid - Berlin", "", job.WorkModelHybrid},
		{"Backend Engineer", "Berlin (on-site)", "", job.WorkModelOnsite},
		{"Backend Engineer", "Berlin", "This role is fully remote.", job.WorkModelRemote},
		{"Backend Engineer", "Berlin", "Great office.", job.WorkModelUnknown},
	}
	for _, tc := range cases {
		if got := inferWorkModel(tc.title, tc.location, tc.desc); got != tc.want {
			t.Errorf("inferWorkModel(%q, %q) = %q, want %q", tc.title, tc.location, got, tc.want)
		}
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	p := Normalize(RawPosting{
		Source:  "BoardA",
		Title:   "  Senior   Backend\n Engineer ",
		Company: " Acme  Inc ",
		URL:     "https://boarda.example/job/123#apply",
	})
	if p.Title != "Senior Backend Engineer" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Company != "Acme Inc" {
		t.Fatalf("company = %q", p.Company)
	}
	if p.SourceName != "boarda" {
		t.Fatalf("source = %q", p.SourceName)
	}
	if p.URL != "https://boarda.example/job/123" {
		t.Fatalf("url fragment must be stripped, got %q", p.URL)
	}
}
