// Package rowapi talks to a PostgREST-style hosted row API (Supabase and
// friends): one relation of job postings, one of applications.
package rowapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
)

const (
	maxErrBody  = 4 << 10
	maxRowsBody = 16 << 20
)

type Config struct {
	BaseURL           string // https://<project>.supabase.co
	APIKey            string
	JobsTable         string
	ApplicationsTable string
	Timeout           time.Duration
	RatePerSec        float64
	Burst             int
	UserAgent         string

	// ReturnRepresentation asks the API to echo inserted applications so
	// their ids are known. Insert-only row policies reject that read, so
	// it is off unless configured.
	ReturnRepresentation bool
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *HostLimiter
}

var _ backend.Backend = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("rowapi: invalid base url %q", cfg.BaseURL)
	}
	cfg.BaseURL = u.String()
	if cfg.JobsTable == "" {
		cfg.JobsTable = "jobs_job"
	}
	if cfg.ApplicationsTable == "" {
		cfg.ApplicationsTable = "applications"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "gulfjobs-web/1.0"
	}

	c := &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RatePerSec > 0 {
		c.limiter = NewHostLimiter(cfg.RatePerSec, cfg.Burst)
	}
	return c, nil
}

// WithHTTPClient swaps the underlying client; tests use it.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.hc = hc
	return c
}

func (c *Client) tableURL(table string, q url.Values) string {
	u := c.cfg.BaseURL + "/rest/v1/" + url.PathEscape(table)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) ListJobs(ctx context.Context, opts backend.ListOptions) ([]domain.JobPosting, error) {
	q := url.Values{}
	q.Set("select", "*")
	if opts.OrderBy != "" {
		dir := "asc"
		if opts.Descending {
			dir = "desc"
		}
		q.Set("order", opts.OrderBy+"."+dir)
	}
	if opts.Limit > 0 {
		q.Set("limit", fmt.Sprint(opts.Limit))
	}

	var jobs []domain.JobPosting
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.cfg.JobsTable, q), nil, nil, &jobs); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.cfg.JobsTable, err)
	}
	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (domain.JobPosting, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)
	q.Set("limit", "1")

	var jobs []domain.JobPosting
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.cfg.JobsTable, q), nil, nil, &jobs); err != nil {
		return domain.JobPosting{}, fmt.Errorf("get %s %q: %w", c.cfg.JobsTable, id, err)
	}
	if len(jobs) == 0 {
		return domain.JobPosting{}, fmt.Errorf("job %q: %w", id, backend.ErrNotFound)
	}
	return jobs[0], nil
}

type applicationRow struct {
	JobID     string `json:"job_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (c *Client) InsertApplication(ctx context.Context, app domain.Application) (domain.Application, error) {
	row := applicationRow{
		JobID:   app.JobID,
		Name:    app.Name,
		Email:   app.Email,
		Phone:   app.Phone,
		Message: app.Message,
	}
	if !app.CreatedAt.IsZero() {
		row.CreatedAt = app.CreatedAt.UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(row)
	if err != nil {
		return domain.Application{}, err
	}

	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	target := c.tableURL(c.cfg.ApplicationsTable, nil)

	if !c.cfg.ReturnRepresentation {
		hdr.Set("Prefer", "return=minimal")
		if err := c.do(ctx, http.MethodPost, target, bytes.NewReader(body), hdr, nil); err != nil {
			return domain.Application{}, fmt.Errorf("insert %s: %w", c.cfg.ApplicationsTable, err)
		}
		return app, nil
	}

	hdr.Set("Prefer", "return=representation")
	var saved []struct {
		ID json.RawMessage `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, target, bytes.NewReader(body), hdr, &saved); err != nil {
		return domain.Application{}, fmt.Errorf("insert %s: %w", c.cfg.ApplicationsTable, err)
	}
	if len(saved) > 0 {
		app.ID = rawID(saved[0].ID)
	}
	return app, nil
}

func (c *Client) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, hdr http.Header, out any) error {
	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, rawURL); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return err
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return parseError(resp.StatusCode, b)
	}
	if out == nil {
		return nil
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxRowsBody))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		// return=minimal or an empty 201
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// rawID accepts numeric and string primary keys alike.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
