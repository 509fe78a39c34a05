package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// JobPosting is one employment opportunity as published by the hosted backend.
// Rows are read-only here; the backend owns their lifecycle.
type JobPosting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	Salary       string    `json:"salary"`
	Currency     string    `json:"currency"`
	Positions    int       `json:"positions"`
	Category     string    `json:"category"`
	Experience   string    `json:"experience"`
	Type         string    `json:"type"` // employment type
	Requirements ItemList  `json:"requirements"`
	Benefits     ItemList  `json:"benefits"`
	Deadline     Date      `json:"deadline"`
	Description  string    `json:"description"`
	PostedAt     time.Time `json:"created_at"`
}

// UnmarshalJSON accepts numeric or string ids and turns absent
// requirement/benefit lists into empty ones. A created_at the row store
// sends without a zone is read as UTC; one that cannot be read is left zero.
func (j *JobPosting) UnmarshalJSON(b []byte) error {
	type alias JobPosting
	aux := struct {
		ID       json.RawMessage `json:"id"`
		PostedAt json.RawMessage `json:"created_at"`
		*alias
	}{alias: (*alias)(j)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	j.ID = rawID(aux.ID)
	j.PostedAt = time.Time{}
	var posted string
	if err := json.Unmarshal(aux.PostedAt, &posted); err == nil {
		j.PostedAt, _ = ParseTimestamp(posted)
	}
	if j.Requirements == nil {
		j.Requirements = ItemList{}
	}
	if j.Benefits == nil {
		j.Benefits = ItemList{}
	}
	return nil
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Location renders "City, Country", or just the country when no city is set.
func (j JobPosting) Location() string {
	city := strings.TrimSpace(j.City)
	if city == "" {
		return j.Country
	}
	return city + ", " + j.Country
}

// ItemList is a named collection of free-text entries. On the wire it is
// {"items": [...]}; older rows store a bare array and some have nothing.
type ItemList []string

type itemsEnvelope struct {
	Items []string `json:"items"`
}

func (l *ItemList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = ItemList{}
		return nil
	}
	if b[0] == '[' {
		var xs []string
		if err := json.Unmarshal(b, &xs); err != nil {
			return err
		}
		*l = normalizeItems(xs)
		return nil
	}
	var env itemsEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	*l = normalizeItems(env.Items)
	return nil
}

func (l ItemList) MarshalJSON() ([]byte, error) {
	items := []string(l)
	if items == nil {
		items = []string{}
	}
	return json.Marshal(itemsEnvelope{Items: items})
}

func normalizeItems(xs []string) ItemList {
	out := make(ItemList, 0, len(xs))
	for _, x := range xs {
		x = CleanText(x)
		if x == "" {
			continue
		}
		out = append(out, x)
	}
	return out
}

// Date is a calendar day without a time-of-day component.
type Date struct {
	time.Time
}

const DateLayout = "2006-01-02"

// timestampLayouts covers timestamptz as well as timestamp columns, which
// the row store serializes without a zone, with either separator.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp reads s with the first matching layout. Zone-less values
// are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return Date{}, err
	}
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
}

// UnmarshalJSON never fails: a deadline it cannot read becomes the zero
// Date, so one malformed row does not sink a whole listing.
func (d *Date) UnmarshalJSON(b []byte) error {
	*d = Date{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
