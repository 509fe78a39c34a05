package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"gulfjobs-web/internal/domain"
)

// SeedFile is the YAML layout accepted by `db seed`.
type SeedFile struct {
	Jobs []SeedJob `yaml:"jobs"`
}

type SeedJob struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Country      string   `yaml:"country"`
	City         string   `yaml:"city"`
	Salary       string   `yaml:"salary"`
	Currency     string   `yaml:"currency"`
	Positions    int      `yaml:"positions"`
	Category     string   `yaml:"category"`
	Experience   string   `yaml:"experience"`
	Type         string   `yaml:"type"`
	Requirements []string `yaml:"requirements"`
	Benefits     []string `yaml:"benefits"`
	Deadline     string   `yaml:"deadline"`
	Description  string   `yaml:"description"`
	PostedAt     string   `yaml:"posted_at"`
}

func (s SeedJob) posting(now time.Time) (domain.JobPosting, error) {
	j := domain.JobPosting{
		ID:          strings.TrimSpace(s.ID),
		Title:       domain.CleanText(s.Title),
		Company:     domain.CleanText(s.Company),
		Country:     domain.CleanText(s.Country),
		City:        domain.CleanText(s.City),
		Salary:      strings.TrimSpace(s.Salary),
		Currency:    strings.TrimSpace(s.Currency),
		Positions:   s.Positions,
		Category:    domain.CleanText(s.Category),
		Experience:  domain.CleanText(s.Experience),
		Type:        domain.CleanText(s.Type),
		Description: domain.CleanMultiline(s.Description),
		PostedAt:    now,
	}
	if j.Title == "" {
		return j, fmt.Errorf("title is required")
	}
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	for _, r := range s.Requirements {
		if r = domain.CleanText(r); r != "" {
			j.Requirements = append(j.Requirements, r)
		}
	}
	for _, b := range s.Benefits {
		if b = domain.CleanText(b); b != "" {
			j.Benefits = append(j.Benefits, b)
		}
	}
	d, err := domain.ParseDate(s.Deadline)
	if err != nil {
		return j, fmt.Errorf("deadline: %w", err)
	}
	j.Deadline = d
	if p := strings.TrimSpace(s.PostedAt); p != "" {
		t, err := time.Parse(time.RFC3339, p)
		if err != nil {
			return j, fmt.Errorf("posted_at: %w", err)
		}
		j.PostedAt = t
	}
	return j, nil
}

// Seed upserts every job in r inside one transaction.
func Seed(ctx context.Context, db *sql.DB, r io.Reader) (int, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return 0, fmt.Errorf("parse seed: %w", err)
	}

	now := time.Now().UTC()
	jobs := make([]domain.JobPosting, 0, len(f.Jobs))
	for i, s := range f.Jobs {
		j, err := s.posting(now)
		if err != nil {
			return 0, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		jobs = append(jobs, j)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()
	for _, j := range jobs {
		if err := upsertJob(ctx, tx, j); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(jobs), nil
}

func SeedFromFile(ctx context.Context, db *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Seed(ctx, db, f)
}
