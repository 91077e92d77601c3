package job

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

type WorkModel string

const (
	WorkModelRemote  WorkModel = "remote"
	WorkModelHybrid  WorkModel = "hybrid"
	WorkModelOnsite  WorkModel = "onsite"
	WorkModelUnknown WorkModel = ""
)

// SkillRequirement is one extracted skill from a posting. YearsRequested
// is zero when the posting does not ask for a specific tenure.
type SkillRequirement struct {
	Name           string
	YearsRequested int
}

// SourceRef records that the same posting was also found on another board.
type SourceRef struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

// Posting is an ingested job. Once scored it is immutable except for the
// staleness and repost metadata maintained by the dedup engine.
type Posting struct {
	ID              uuid.UUID
	SourceName      string
	ExternalID      string
	URL             string
	Title           string
	Company         string
	Description     string
	RequiredSkills  []SkillRequirement
	PreferredSkills []SkillRequirement

	// CultureText is LLM-derived and semantically distinct from the
	// requirements; the two are never embedded together.
	CultureText string

	SalaryMin      *int
	SalaryMax      *int
	SalaryCurrency string

	Location       string
	WorkModel      WorkModel
	SeniorityLevel string
	Industry       string
	VisaSponsored  *bool

	MinYears *int
	MaxYears *int

	PostedDate          *time.Time
	FirstSeenDate       *time.Time
	ApplicationDeadline *time.Time

	DescriptionHash string
	RepostCount     int
	AlsoFoundOn     []SourceRef
	LinkedJobID     *uuid.UUID

	CreatedAt time.Time
}

func (p Posting) SalaryDisclosed() bool {
	return p.SalaryMin != nil || p.SalaryMax != nil
}

// HashDescription builds the content fingerprint used for cross-source
// duplicate detection. Whitespace and case are normalized so boards that
// reformat the same text still collide.
func HashDescription(title, company, description string) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	h := sha256.New()
	h.Write([]byte(norm(title)))
	h.Write([]byte{'\n'})
	h.Write([]byte(norm(company)))
	h.Write([]byte{'\n'})
	h.Write([]byte(norm(description)))
	return hex.EncodeToString(h.Sum(nil))
}
