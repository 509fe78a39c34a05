package listing

import (
	"strconv"
	"strings"

	"gulfjobs-web/internal/domain"
)

const DefaultPageSize = 7

type Page struct {
	Items      []domain.JobPosting `json:"jobs"`
	Number     int                 `json:"page"`
	Size       int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	TotalItems int                 `json:"total"`
	HasPrev    bool                `json:"has_prev"`
	HasNext    bool                `json:"has_next"`
}

// TotalPages is ceil(count/size), never less than 1.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Paginate returns the 1-indexed page of jobs. Out-of-range page numbers are
// clamped to [1, TotalPages], so a filter that shrinks the result set never
// leaves the caller on an empty page past the end.
func Paginate(jobs []domain.JobPosting, size, number int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(jobs), size)
	number = clamp(number, 1, total)

	start := (number - 1) * size
	end := start + size
	if end > len(jobs) {
		end = len(jobs)
	}

	items := make([]domain.JobPosting, end-start)
	copy(items, jobs[start:end])

	return Page{
		Items:      items,
		Number:     number,
		Size:       size,
		TotalPages: total,
		TotalItems: len(jobs),
		HasPrev:    number > 1,
		HasNext:    number < total,
	}
}

// ParsePage reads a page number from a query value; anything unusable is 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
