// Package pgstore reads and writes the job board relations directly in
// Postgres through gorm, for deployments that sit next to the database
// instead of behind the hosted row API.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
)

type Config struct {
	DSN               string
	JobsTable         string
	ApplicationsTable string
	Debug             bool
}

type Store struct {
	db     *gorm.DB
	jobs   string
	apps   string
	closer func() error
}

var _ backend.Backend = (*Store)(nil)

var orderColumns = map[string]bool{"created_at": true, "deadline": true, "title": true}

func Open(cfg Config) (*Store, error) {
	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}
	return New(db, cfg), nil
}

// New wraps an existing connection.
func New(db *gorm.DB, cfg Config) *Store {
	s := &Store{db: db, jobs: cfg.JobsTable, apps: cfg.ApplicationsTable}
	if s.jobs == "" {
		s.jobs = "jobs_job"
	}
	if s.apps == "" {
		s.apps = "applications"
	}
	s.closer = func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return s
}

// Migrate creates the applications relation when missing. The jobs
// relation belongs to whoever publishes postings and is never touched.
func (s *Store) Migrate(ctx context.Context) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Table(s.apps).AutoMigrate(&applicationRow{}); err != nil {
		return fmt.Errorf("migrate %s: %w", s.apps, err)
	}
	return nil
}

func (s *Store) listQuery(tx *gorm.DB, opts backend.ListOptions) *gorm.DB {
	q := tx.Table(s.jobs)
	if opts.OrderBy != "" {
		col := opts.OrderBy
		if !orderColumns[col] {
			col = "created_at"
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: opts.Descending})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	return q
}

func (s *Store) ListJobs(ctx context.Context, opts backend.ListOptions) ([]domain.JobPosting, error) {
	var rows []jobRow
	if err := s.listQuery(s.db.WithContext(ctx), opts).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.jobs, err)
	}
	out := make([]domain.JobPosting, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.posting())
	}
	return out, nil
}

func (s *Store) getQuery(tx *gorm.DB, id string) *gorm.DB {
	return tx.Table(s.jobs).Where("id = ?", id)
}

func (s *Store) GetJob(ctx context.Context, id string) (domain.JobPosting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.JobPosting{}, backend.ErrNotFound
	}
	var r jobRow
	err := s.getQuery(s.db.WithContext(ctx), id).Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.JobPosting{}, fmt.Errorf("job %q: %w", id, backend.ErrNotFound)
	}
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("get %s %q: %w", s.jobs, id, err)
	}
	return r.posting(), nil
}

func (s *Store) InsertApplication(ctx context.Context, app domain.Application) (domain.Application, error) {
	row, err := newApplicationRow(app)
	if err != nil {
		return domain.Application{}, err
	}
	if err := s.db.WithContext(ctx).Table(s.apps).Create(&row).Error; err != nil {
		return domain.Application{}, fmt.Errorf("insert %s: %w", s.apps, err)
	}
	app.ID = row.ID
	app.CreatedAt = row.CreatedAt
	return app, nil
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (r jobRow) posting() domain.JobPosting {
	j := domain.JobPosting{
		ID:           r.ID,
		Title:        r.Title,
		Company:      r.Company,
		Country:      r.Country,
		Salary:       r.Salary,
		Currency:     r.Currency,
		Positions:    r.Positions,
		Category:     r.Category,
		Experience:   r.Experience,
		Type:         r.Type,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
		Description:  r.Description,
		PostedAt:     r.CreatedAt,
	}
	if r.City != nil {
		j.City = *r.City
	}
	if j.Requirements == nil {
		j.Requirements = domain.ItemList{}
	}
	if j.Benefits == nil {
		j.Benefits = domain.ItemList{}
	}
	if r.Deadline != nil {
		y, m, d := r.Deadline.Date()
		j.Deadline = domain.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	}
	return j
}

func newApplicationRow(app domain.Application) (applicationRow, error) {
	jobID := strings.TrimSpace(app.JobID)
	if jobID == "" {
		return applicationRow{}, errors.New("application has no job id")
	}
	return applicationRow{
		JobID:     jobID,
		Name:      app.Name,
		Email:     app.Email,
		Phone:     app.Phone,
		Message:   app.Message,
		CreatedAt: app.CreatedAt,
	}, nil
}
