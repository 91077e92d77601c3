package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pathmatch/internal/database"
	"pathmatch/internal/domain/job"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, source_name, external_id, COALESCE(url, ''), COALESCE(title, ''), COALESCE(company, ''),
	COALESCE(description, ''), required_skills, preferred_skills, COALESCE(culture_text, ''),
	salary_min, salary_max, COALESCE(salary_currency, ''), COALESCE(location, ''), COALESCE(work_model, ''),
	COALESCE(seniority_level, ''), COALESCE(industry, ''), visa_sponsored, min_years, max_years,
	posted_date, first_seen_date, application_deadline, COALESCE(description_hash, ''),
	repost_count, also_found_on, linked_job_id, created_at`

type JobRepository interface {
	Create(ctx context.Context, j *job.Posting) error
	Update(ctx context.Context, j *job.Posting) error
	FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]job.Posting, error)
	FindByDescriptionHash(ctx context.Context, hash string) (job.Posting, error)
	FindDedupPool(ctx context.Context, sourceName, company string) ([]job.Posting, error)
	ListRecent(ctx context.Context, limit int) ([]job.Posting, error)
	AddAlsoFoundOn(ctx context.Context, id uuid.UUID, ref job.SourceRef) error
	IncrementRepost(ctx context.Context, id uuid.UUID) error
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, the signal for a lost duplicate-insert race.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Posting) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.CreatedAt = time.Now().UTC()

	req, pref, found, err := marshalJobJSON(j)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
INSERT INTO jobs (id, source_name, external_id, url, title, company, description,
	required_skills, preferred_skills, culture_text, salary_min, salary_max, salary_currency,
	location, work_model, seniority_level, industry, visa_sponsored, min_years, max_years,
	posted_date, first_seen_date, application_deadline, description_hash, repost_count,
	also_found_on, linked_job_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
	$19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`,
		j.ID, j.SourceName, j.ExternalID, j.URL, j.Title, j.Company, j.Description,
		req, pref, j.CultureText, j.SalaryMin, j.SalaryMax, j.SalaryCurrency,
		j.Location, string(j.WorkModel), j.SeniorityLevel, j.Industry, j.VisaSponsored,
		j.MinYears, j.MaxYears, j.PostedDate, j.FirstSeenDate, j.ApplicationDeadline,
		j.DescriptionHash, j.RepostCount, found, j.LinkedJobID, j.CreatedAt,
	)
	return err
}

func (r *PostgresJobRepository) Update(ctx context.Context, j *job.Posting) error {
	req, pref, found, err := marshalJobJSON(j)
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx, `
UPDATE jobs SET url = $2, title = $3, company = $4, description = $5, required_skills = $6,
	preferred_skills = $7, culture_text = $8, salary_min = $9, salary_max = $10,
	salary_currency = $11, location = $12, work_model = $13, seniority_level = $14,
	industry = $15, visa_sponsored = $16, min_years = $17, max_years = $18, posted_date = $19,
	application_deadline = $20, description_hash = $21, repost_count = $22, also_found_on = $23,
	linked_job_id = $24
WHERE id = $1`,
		j.ID, j.URL, j.Title, j.Company, j.Description, req, pref, j.CultureText,
		j.SalaryMin, j.SalaryMax, j.SalaryCurrency, j.Location, string(j.WorkModel),
		j.SeniorityLevel, j.Industry, j.VisaSponsored, j.MinYears, j.MaxYears, j.PostedDate,
		j.ApplicationDeadline, j.DescriptionHash, j.RepostCount, found, j.LinkedJobID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]job.Posting, error) {
	if len(ids) == 0 {
		return []job.Posting{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) FindByDescriptionHash(ctx context.Context, hash string) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE description_hash = $1`, hash)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return j, nil
}

// FindDedupPool loads the candidates an incoming posting must be
// compared against: anything from the same source or the same company.
func (r *PostgresJobRepository) FindDedupPool(ctx context.Context, sourceName, company string) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+jobColumns+` FROM jobs
WHERE source_name = $1 OR lower(company) = lower($2)
ORDER BY created_at DESC
LIMIT 500`, sourceName, company)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListRecent(ctx context.Context, limit int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) AddAlsoFoundOn(ctx context.Context, id uuid.UUID, ref job.SourceRef) error {
	refJSON, err := json.Marshal(ref)
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx, `
UPDATE jobs SET also_found_on = COALESCE(also_found_on, '[]'::jsonb) || $2::jsonb
WHERE id = $1`, id, refJSON)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) IncrementRepost(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `UPDATE jobs SET repost_count = repost_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func marshalJobJSON(j *job.Posting) (req, pref, found []byte, err error) {
	if req, err = json.Marshal(j.RequiredSkills); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal required skills: %w", err)
	}
	if pref, err = json.Marshal(j.PreferredSkills); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal preferred skills: %w", err)
	}
	if found, err = json.Marshal(j.AlsoFoundOn); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal also_found_on: %w", err)
	}
	return req, pref, found, nil
}

func collectJobs(rows database.Rows) ([]job.Posting, error) {
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Posting, error) {
	var j job.Posting
	var req, pref, found []byte
	var workModel string

	err := row.Scan(&j.ID, &j.SourceName, &j.ExternalID, &j.URL, &j.Title, &j.Company,
		&j.Description, &req, &pref, &j.CultureText, &j.SalaryMin, &j.SalaryMax,
		&j.SalaryCurrency, &j.Location, &workModel, &j.SeniorityLevel, &j.Industry,
		&j.VisaSponsored, &j.MinYears, &j.MaxYears, &j.PostedDate, &j.FirstSeenDate,
		&j.ApplicationDeadline, &j.DescriptionHash, &j.RepostCount, &found, &j.LinkedJobID,
		&j.CreatedAt)
	if err != nil {
		return job.Posting{}, err
	}

	j.WorkModel = job.WorkModel(workModel)
	if len(req) > 0 {
		if err := json.Unmarshal(req, &j.RequiredSkills); err != nil {
			return job.Posting{}, fmt.Errorf("unmarshal required skills: %w", err)
		}
	}
	if len(pref) > 0 {
		if err := json.Unmarshal(pref, &j.PreferredSkills); err != nil {
			return job.Posting{}, fmt.Errorf("unmarshal preferred skills: %w", err)
		}
	}
	if len(found) > 0 {
		if err := json.Unmarshal(found, &j.AlsoFoundOn); err != nil {
			return job.Posting{}, fmt.Errorf("unmarshal also_found_on: %w", err)
		}
	}
	return j, nil
}
