package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestItemListUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ItemList
	}{
		{"envelope", `{"items":["Visa"," Food  allowance ",""]}`, ItemList{"Visa", "Food allowance"}},
		{"bare array", `["Passport","Medical"]`, ItemList{"Passport", "Medical"}},
		{"null", `null`, ItemList{}},
		{"empty envelope", `{}`, ItemList{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ItemList
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Unmarshal() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestJobPostingAbsentListsAreEmpty(t *testing.T) {
	var j JobPosting
	if err := json.Unmarshal([]byte(`{"id":"1","title":"Driver"}`), &j); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if j.Requirements == nil || len(j.Requirements) != 0 {
		t.Fatalf("requirements = %#v, want empty list", j.Requirements)
	}
	b, err := json.Marshal(j)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal(raw) error = %v", err)
	}
	if got := string(raw["benefits"]); got != `{"items":[]}` {
		t.Fatalf("benefits = %s, want {\"items\":[]}", got)
	}
}

func TestJobPostingNumericID(t *testing.T) {
	var jobs []JobPosting
	if err := json.Unmarshal([]byte(`[{"id":42,"title":"Cook"},{"id":"abc"}]`), &jobs); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if jobs[0].ID != "42" || jobs[1].ID != "abc" || jobs[0].Title != "Cook" {
		t.Fatalf("jobs = %+v", jobs)
	}
}

func TestDateParsing(t *testing.T) {
	var j JobPosting
	in := `{"deadline":"2026-11-30","created_at":"2026-10-01T08:00:00Z"}`
	if err := json.Unmarshal([]byte(in), &j); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := j.Deadline.String(); got != "2026-11-30" {
		t.Fatalf("Deadline = %q, want 2026-11-30", got)
	}
	if !j.PostedAt.Equal(time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("PostedAt = %v", j.PostedAt)
	}

	d, err := ParseDate("2026-12-01T15:04:05+04:00")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.String() != "2026-12-01" {
		t.Fatalf("ParseDate() = %q, want 2026-12-01", d.String())
	}

	if _, err := ParseDate("soon"); err == nil {
		t.Fatalf("ParseDate(soon) error = nil, want error")
	}
}

func TestZonelessTimestamps(t *testing.T) {
	cases := []struct {
		name, deadline, createdAt string
		wantDeadline              string
		wantPosted                time.Time
	}{
		{"timestamp with T", "2026-12-31T00:00:00", "2026-10-01T08:00:00.123456", "2026-12-31", time.Date(2026, 10, 1, 8, 0, 0, 123456000, time.UTC)},
		{"timestamp with space", "2026-12-31 18:30:00", "2026-10-01 08:00:00+00", "2026-12-31", time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)},
		{"space and zone", "2026-12-31 18:30:00+04:00", "2026-10-01 08:00:00+04:00", "2026-12-31", time.Date(2026, 10, 1, 4, 0, 0, 0, time.UTC)},
		{"unreadable", "next month", "yesterday", "", time.Time{}},
		{"compact date", "20261231", "", "", time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := `{"id":1,"title":"Mason","deadline":"` + tc.deadline + `","created_at":"` + tc.createdAt + `"}`
			var j JobPosting
			if err := json.Unmarshal([]byte(in), &j); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := j.Deadline.String(); got != tc.wantDeadline {
				t.Fatalf("Deadline = %q, want %q", got, tc.wantDeadline)
			}
			if !j.PostedAt.Equal(tc.wantPosted) {
				t.Fatalf("PostedAt = %v, want %v", j.PostedAt, tc.wantPosted)
			}
			if j.Title != "Mason" {
				t.Fatalf("Title = %q", j.Title)
			}
		})
	}

	var j JobPosting
	if err := json.Unmarshal([]byte(`{"deadline":20261231,"created_at":null}`), &j); err != nil {
		t.Fatalf("Unmarshal(numeric deadline) error = %v", err)
	}
	if !j.Deadline.IsZero() || !j.PostedAt.IsZero() {
		t.Fatalf("posting = %+v, want zero dates", j)
	}
}

func TestLocation(t *testing.T) {
	if got := (JobPosting{City: "Dubai", Country: "UAE"}).Location(); got != "Dubai, UAE" {
		t.Fatalf("Location() = %q", got)
	}
	if got := (JobPosting{Country: "Qatar"}).Location(); got != "Qatar" {
		t.Fatalf("Location() = %q", got)
	}
}

func TestCriteriaNormalized(t *testing.T) {
	got := FilterCriteria{Term: "  driver "}.Normalized()
	want := FilterCriteria{Term: "driver", Country: AllOption, Category: AllOption}
	if got != want {
		t.Fatalf("Normalized() = %#v, want %#v", got, want)
	}
	if !(FilterCriteria{Country: "all"}).IsZero() {
		t.Fatalf("IsZero() = false, want true")
	}
}

func TestCleanMultiline(t *testing.T) {
	in := "  Hello there \r\n\r\n\r\n  I have   5 years  \n\n"
	want := "Hello there\n\nI have 5 years"
	if got := CleanMultiline(in); got != want {
		t.Fatalf("CleanMultiline() = %q, want %q", got, want)
	}
}
