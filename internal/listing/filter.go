package listing

import (
	"strings"

	"gulfjobs-web/internal/domain"
)

// Filter returns the postings matching c, in input order. The result never
// shares a backing array with jobs.
func Filter(jobs []domain.JobPosting, c domain.FilterCriteria) []domain.JobPosting {
	c = c.Normalized()
	term := strings.ToLower(c.Term)

	out := make([]domain.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if matches(j, term, c.Country, c.Category) {
			out = append(out, j)
		}
	}
	return out
}

// Matches reports whether a single posting passes the criteria.
func Matches(j domain.JobPosting, c domain.FilterCriteria) bool {
	c = c.Normalized()
	return matches(j, strings.ToLower(c.Term), c.Country, c.Category)
}

func matches(j domain.JobPosting, term, country, category string) bool {
	if !matchesTerm(j, term) {
		return false
	}
	// facets are offered trimmed, so compare trimmed
	if country != domain.AllOption && strings.TrimSpace(j.Country) != country {
		return false
	}
	if category != domain.AllOption && strings.TrimSpace(j.Category) != category {
		return false
	}
	return true
}

// term is already lower-cased.
func matchesTerm(j domain.JobPosting, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Company), term) {
		return true
	}
	return j.City != "" && strings.Contains(strings.ToLower(j.City), term)
}
