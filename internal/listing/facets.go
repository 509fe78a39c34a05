package listing

import (
	"strings"

	"gulfjobs-web/internal/domain"
)

// Countries lists distinct countries in first-seen order.
func Countries(jobs []domain.JobPosting) []string {
	return distinct(jobs, func(j domain.JobPosting) string { return j.Country })
}

// Categories lists distinct categories in first-seen order.
func Categories(jobs []domain.JobPosting) []string {
	return distinct(jobs, func(j domain.JobPosting) string { return j.Category })
}

func distinct(jobs []domain.JobPosting, field func(domain.JobPosting) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, j := range jobs {
		v := strings.TrimSpace(field(j))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
