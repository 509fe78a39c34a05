package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gulfjobs-web/internal/apply"
	"gulfjobs-web/internal/domain"
	"gulfjobs-web/internal/listing"
)

func TestSalary(t *testing.T) {
	cases := []struct {
		job  domain.JobPosting
		want string
	}{
		{domain.JobPosting{Salary: "2500", Currency: "QAR"}, "2,500 QAR"},
		{domain.JobPosting{Salary: "12,000", Currency: "AED"}, "12,000 AED"},
		{domain.JobPosting{Salary: "Negotiable"}, "Negotiable"},
		{domain.JobPosting{}, "Not specified"},
	}
	for _, tc := range cases {
		if got := Salary(tc.job); got != tc.want {
			t.Fatalf("Salary(%+v) = %q, want %q", tc.job, got, tc.want)
		}
	}
}

func TestDeadlineAndPositions(t *testing.T) {
	if got := Deadline(domain.Date{}); got != "Open until filled" {
		t.Fatalf("Deadline(zero) = %q", got)
	}
	past := domain.Date{Time: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}
	if got := Deadline(past); got != "2020-01-02" {
		t.Fatalf("Deadline(past) = %q", got)
	}
	future := domain.Date{Time: time.Now().AddDate(0, 0, 10)}
	if got := Deadline(future); !strings.HasPrefix(got, future.String()+" (") {
		t.Fatalf("Deadline(future) = %q", got)
	}
	if Positions(0) != "" || Positions(1) != "1 position" || Positions(1200) != "1,200 positions" {
		t.Fatalf("Positions() = %q %q %q", Positions(0), Positions(1), Positions(1200))
	}
}

func TestJobsURL(t *testing.T) {
	cases := []struct {
		c    domain.FilterCriteria
		page int
		want string
	}{
		{domain.FilterCriteria{}, 1, "/jobs"},
		{domain.FilterCriteria{Country: "all", Category: "all"}, 2, "/jobs?page=2"},
		{domain.FilterCriteria{Term: "heavy driver", Country: "Saudi Arabia"}, 3, "/jobs?country=Saudi+Arabia&page=3&q=heavy+driver"},
	}
	for _, tc := range cases {
		if got := JobsURL(tc.c, tc.page); got != tc.want {
			t.Fatalf("JobsURL(%+v, %d) = %q, want %q", tc.c, tc.page, got, tc.want)
		}
	}
}

func TestRenderJobsPager(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	jobs := make([]domain.JobPosting, 10)
	for i := range jobs {
		jobs[i] = domain.JobPosting{ID: string(rune('a' + i)), Title: "Job", Country: "UAE"}
	}
	view := listing.BuildView(listing.Result{Jobs: jobs}, domain.FilterCriteria{Term: "job"}, 7, 2)

	var buf bytes.Buffer
	if err := r.Render(&buf, PageJobs, JobsPage{Site: Site{Name: "Gulf"}, View: view}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n := doc.Find(".job-card").Length(); n != 3 {
		t.Fatalf("cards = %d, want 3", n)
	}
	if got := doc.Find(".pager .current").Text(); got != "2" {
		t.Fatalf("current page = %q", got)
	}
	if href, _ := doc.Find(".pager .prev").Attr("href"); href != "/jobs?q=job" {
		t.Fatalf("prev href = %q", href)
	}
	if doc.Find(".pager .next").Length() != 0 {
		t.Fatalf("next link on last page")
	}
	if got := doc.Find("title").Text(); got != "Available Jobs | Gulf" {
		t.Fatalf("title = %q", got)
	}
}

func TestRenderJobPageErrors(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data := JobPage{
		Site:    Site{Name: "Gulf"},
		Job:     domain.JobPosting{ID: "7", Title: "Mason", Country: "Oman", Requirements: domain.ItemList{"Passport"}},
		Form:    apply.Form{Email: "bad"},
		Errors:  apply.FieldErrors{apply.FieldName: "Name is required."},
		Message: apply.InvalidMessage,
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, PageJob, data); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc, _ := goquery.NewDocumentFromReader(&buf)
	if got := doc.Find(`.field-error[data-field="name"]`).Text(); got != "Name is required." {
		t.Fatalf("name error = %q", got)
	}
	if v, _ := doc.Find("input#email").Attr("value"); v != "bad" {
		t.Fatalf("email value = %q", v)
	}
	if got := doc.Find(".requirements li").Text(); got != "Passport" {
		t.Fatalf("requirements = %q", got)
	}
	if got := doc.Find(".benefits .none").Length(); got != 1 {
		t.Fatalf("empty benefits placeholder missing")
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, _ := New()
	if err := r.Render(&bytes.Buffer{}, "nope.html", nil); err == nil {
		t.Fatalf("Render(unknown) error = nil")
	}
}
