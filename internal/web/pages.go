package web

import (
	"net/url"
	"strconv"

	"gulfjobs-web/internal/apply"
	"gulfjobs-web/internal/domain"
	"gulfjobs-web/internal/listing"
)

type Site struct {
	Name    string
	BaseURL string
}

type Country struct {
	Name      string
	Flag      string
	VisaTypes []string
}

// GulfCountries are the six GCC states the agency serves.
var GulfCountries = []Country{
	{Name: "UAE", Flag: "🇦🇪", VisaTypes: []string{"Tourist", "Business", "Work"}},
	{Name: "Saudi Arabia", Flag: "🇸🇦", VisaTypes: []string{"Tourist", "Business", "Hajj/Umrah"}},
	{Name: "Qatar", Flag: "🇶🇦", VisaTypes: []string{"Tourist", "Business", "Work"}},
	{Name: "Kuwait", Flag: "🇰🇼", VisaTypes: []string{"Tourist", "Business", "Work"}},
	{Name: "Bahrain", Flag: "🇧🇭", VisaTypes: []string{"Tourist", "Business", "Work"}},
	{Name: "Oman", Flag: "🇴🇲", VisaTypes: []string{"Tourist", "Business", "Work"}},
}

type HomePage struct {
	Site      Site
	Countries []Country
	Featured  []domain.JobPosting
	Error     string
}

type JobsPage struct {
	Site Site
	View listing.View
}

func (p JobsPage) Error() string { return p.View.ErrorMessage() }

func (p JobsPage) NoJobsMessage() string { return listing.NoJobsMessage }

// PageURL links to page n under the current criteria.
func (p JobsPage) PageURL(n int) string {
	return JobsURL(p.View.Criteria, n)
}

// PageNumbers lists every page for the pager.
func (p JobsPage) PageNumbers() []int {
	out := make([]int, p.View.Page.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (p JobsPage) IsAll(v string) bool { return v == "" || v == domain.AllOption }

// JobsURL builds a listing link, leaving out defaults.
func JobsURL(c domain.FilterCriteria, page int) string {
	c = c.Normalized()
	q := url.Values{}
	if c.Term != "" {
		q.Set("q", c.Term)
	}
	if c.Country != domain.AllOption {
		q.Set("country", c.Country)
	}
	if c.Category != domain.AllOption {
		q.Set("category", c.Category)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/jobs"
	}
	return "/jobs?" + q.Encode()
}

type JobPage struct {
	Site    Site
	Job     domain.JobPosting
	Form    apply.Form
	Errors  apply.FieldErrors
	Message string
	Success bool
	Token   string
}

type ErrorPage struct {
	Site    Site
	Status  int
	Message string
}
