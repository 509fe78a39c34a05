package web

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"gulfjobs-web/internal/domain"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"salary":    Salary,
		"positions": Positions,
		"deadline":  Deadline,
		"posted":    Posted,
		"plural":    plural,
		"add1":      func(n int) int { return n + 1 },
		"sub1":      func(n int) int { return n - 1 },
	}
}

// Salary renders "2,500 QAR"; non-numeric salaries ("Negotiable") pass
// through untouched.
func Salary(j domain.JobPosting) string {
	s := strings.TrimSpace(j.Salary)
	if s == "" {
		return "Not specified"
	}
	if n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64); err == nil {
		s = humanize.Comma(n)
	}
	if j.Currency != "" {
		s += " " + j.Currency
	}
	return s
}

func Positions(n int) string {
	if n <= 0 {
		return ""
	}
	return humanize.Comma(int64(n)) + " " + plural(n, "position", "positions")
}

// Deadline renders the closing date, with a relative hint while it is
// still ahead.
func Deadline(d domain.Date) string {
	if d.IsZero() {
		return "Open until filled"
	}
	if d.After(time.Now()) {
		return d.String() + " (" + humanize.Time(d.Time) + ")"
	}
	return d.String()
}

func Posted(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
