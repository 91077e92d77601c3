package dto

import (
	"time"

	"github.com/google/uuid"

	"pathmatch/internal/domain/job"
)

type SourceRefResponse struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

type JobResponse struct {
	ID             uuid.UUID           `json:"id"`
	Source         string              `json:"source"`
	URL            string              `json:"url,omitempty"`
	Title          string              `json:"title"`
	Company        string              `json:"company"`
	Location       string              `json:"location,omitempty"`
	WorkModel      string              `json:"work_model,omitempty"`
	SalaryMin      *int                `json:"salary_min"`
	SalaryMax      *int                `json:"salary_max"`
	SalaryCurrency string              `json:"salary_currency,omitempty"`
	PostedDate     *time.Time          `json:"posted_date"`
	FirstSeenDate  *time.Time          `json:"first_seen_date"`
	RepostCount    int                 `json:"repost_count"`
	AlsoFoundOn    []SourceRefResponse `json:"also_found_on"`
	LinkedJobID    *uuid.UUID          `json:"linked_job_id,omitempty"`
}

func NewJobResponse(j job.Posting) JobResponse {
	refs := make([]SourceRefResponse, 0, len(j.AlsoFoundOn))
	for _, r := range j.AlsoFoundOn {
		refs = append(refs, SourceRefResponse{Source: r.Source, URL: r.URL})
	}
	return JobResponse{
		ID:             j.ID,
		Source:         j.SourceName,
		URL:            j.URL,
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		WorkModel:      string(j.WorkModel),
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		SalaryCurrency: j.SalaryCurrency,
		PostedDate:     j.PostedDate,
		FirstSeenDate:  j.FirstSeenDate,
		RepostCount:    j.RepostCount,
		AlsoFoundOn:    refs,
		LinkedJobID:    j.LinkedJobID,
	}
}

func NewJobListResponse(in []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(in))
	for _, j := range in {
		out = append(out, NewJobResponse(j))
	}
	return out
}
