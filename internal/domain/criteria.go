package domain

import "strings"

// AllOption is the selector value meaning "no constraint".
const AllOption = "all"

// FilterCriteria is the search box plus the two selectors on the listing page.
// It only lives in the request URL.
type FilterCriteria struct {
	Term     string `json:"q"`
	Country  string `json:"country"`
	Category string `json:"category"`
}

// Normalized trims the term and maps empty selectors to AllOption.
func (c FilterCriteria) Normalized() FilterCriteria {
	c.Term = strings.TrimSpace(c.Term)
	c.Country = strings.TrimSpace(c.Country)
	c.Category = strings.TrimSpace(c.Category)
	if c.Country == "" {
		c.Country = AllOption
	}
	if c.Category == "" {
		c.Category = AllOption
	}
	return c
}

func (c FilterCriteria) IsZero() bool {
	n := c.Normalized()
	return n.Term == "" && n.Country == AllOption && n.Category == AllOption
}
