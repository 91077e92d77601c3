package llm

import (
	"context"
	"errors"
	"testing"
)

type stubClient struct {
	response string
	err      error
}

func (s *stubClient) CompleteJSON(context.Context, string) (string, error) {
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func TestRateParsesResponse(t *testing.T) {
	rater := NewVaguenessRater(&stubClient{response: `{"vagueness": 72}`}, nil)
	v, err := rater.Rate(context.Background(), "some description")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if v != 72 {
		t.Fatalf("vagueness = %v, want 72", v)
	}
}

func TestRateStripsCodeFences(t *testing.T) {
	rater := NewVaguenessRater(&stubClient{response: "```json\n{\"vagueness\": 40}\n```"}, nil)
	v, err := rater.Rate(context.Background(), "desc")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if v != 40 {
		t.Fatalf("vagueness = %v, want 40", v)
	}
}

func TestRatePropagatesClientFailure(t *testing.T) {
	rater := NewVaguenessRater(&stubClient{err: errors.New("rate limited")}, nil)
	if _, err := rater.Rate(context.Background(), "desc"); err == nil {
		t.Fatal("expected client failure to propagate")
	}
}

func TestParseVaguenessRejectsGarbage(t *testing.T) {
	cases := []string{
		"not json",
		`{"vagueness": -5}`,
		`{"vagueness": 150}`,
	}
	for _, raw := range cases {
		if _, err := parseVagueness(raw); err == nil {
			t.Errorf("parseVagueness(%q) accepted invalid input", raw)
		}
	}
}

func TestCleanJSONBlock(t *testing.T) {
	if got := cleanJSONBlock("```json\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Fatalf("cleanJSONBlock = %q", got)
	}
	if got := cleanJSONBlock(`{"a":1}`); got != `{"a":1}` {
		t.Fatalf("cleanJSONBlock untouched = %q", got)
	}
}
