package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
)

const jobColumns = `id, title, company, country, city, salary, currency, positions, category,
experience, type, requirements, benefits, deadline, description, created_at`

// orderable columns; anything else falls back to created_at
var orderColumns = map[string]string{
	"created_at": "created_at",
	"deadline":   "deadline",
	"title":      "title",
}

type Backend struct {
	db  *DB
	now func() time.Time
}

var _ backend.Backend = (*Backend)(nil)

func NewBackend(db *DB) *Backend {
	return &Backend{db: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (domain.JobPosting, error) {
	var (
		j                  domain.JobPosting
		reqJSON, benJSON   string
		deadline, postedAt string
	)
	if err := r.Scan(
		&j.ID, &j.Title, &j.Company, &j.Country, &j.City, &j.Salary, &j.Currency,
		&j.Positions, &j.Category, &j.Experience, &j.Type,
		&reqJSON, &benJSON, &deadline, &j.Description, &postedAt,
	); err != nil {
		return domain.JobPosting{}, err
	}
	if err := json.Unmarshal([]byte(reqJSON), &j.Requirements); err != nil {
		return domain.JobPosting{}, fmt.Errorf("job %s requirements: %w", j.ID, err)
	}
	if err := json.Unmarshal([]byte(benJSON), &j.Benefits); err != nil {
		return domain.JobPosting{}, fmt.Errorf("job %s benefits: %w", j.ID, err)
	}
	// a bad date renders as blank rather than hiding the posting
	j.Deadline, _ = domain.ParseDate(deadline)
	j.PostedAt, _ = time.Parse(time.RFC3339, postedAt)
	return j, nil
}

func (b *Backend) ListJobs(ctx context.Context, opts backend.ListOptions) ([]domain.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs_job`
	if opts.OrderBy != "" {
		col := orderColumns[opts.OrderBy]
		if col == "" {
			col = "created_at"
		}
		dir := "ASC"
		if opts.Descending {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s, rowid %s", col, dir, dir)
	} else {
		query += " ORDER BY rowid"
	}
	args := []any{}
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := b.db.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.JobPosting{}
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

func (b *Backend) GetJob(ctx context.Context, id string) (domain.JobPosting, error) {
	row := b.db.Pool.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs_job WHERE id = ? LIMIT 1;`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.JobPosting{}, fmt.Errorf("job %q: %w", id, backend.ErrNotFound)
	}
	return j, err
}

func (b *Backend) InsertApplication(ctx context.Context, app domain.Application) (domain.Application, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = b.now()
	}
	_, err := b.db.Pool.ExecContext(ctx, `
INSERT INTO applications (id, job_id, name, email, phone, message, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		app.ID, app.JobID, app.Name, app.Email, app.Phone, app.Message,
		app.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return domain.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return app, nil
}

// ListApplications returns stored applications, oldest first.
func (b *Backend) ListApplications(ctx context.Context) ([]domain.Application, error) {
	rows, err := b.db.Pool.QueryContext(ctx, `
SELECT id, job_id, name, email, phone, message, created_at
FROM applications
ORDER BY created_at, rowid;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		var a domain.Application
		var created string
		if err := rows.Scan(&a.ID, &a.JobID, &a.Name, &a.Email, &a.Phone, &a.Message, &created); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (b *Backend) Close() error {
	return b.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// UpsertJob inserts or replaces a posting by id.
func UpsertJob(ctx context.Context, db *sql.DB, j domain.JobPosting) error {
	return upsertJob(ctx, db, j)
}

func upsertJob(ctx context.Context, db execer, j domain.JobPosting) error {
	reqB, err := json.Marshal(j.Requirements)
	if err != nil {
		return err
	}
	benB, err := json.Marshal(j.Benefits)
	if err != nil {
		return err
	}
	posted := j.PostedAt
	if posted.IsZero() {
		posted = time.Now()
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO jobs_job (`+jobColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title, company=excluded.company, country=excluded.country,
  city=excluded.city, salary=excluded.salary, currency=excluded.currency,
  positions=excluded.positions, category=excluded.category,
  experience=excluded.experience, type=excluded.type,
  requirements=excluded.requirements, benefits=excluded.benefits,
  deadline=excluded.deadline, description=excluded.description,
  created_at=excluded.created_at;`,
		j.ID, j.Title, j.Company, j.Country, j.City, j.Salary, j.Currency,
		j.Positions, j.Category, j.Experience, j.Type,
		string(reqB), string(benB), j.Deadline.String(), j.Description,
		posted.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert job %s: %w", j.ID, err)
	}
	return nil
}
