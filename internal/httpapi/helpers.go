package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"gulfjobs-web/internal/domain"
)

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		if _, ok := m[http.MethodGet]; ok && r.Method == http.MethodHead {
			m[http.MethodGet](w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func criteriaFrom(r *http.Request) domain.FilterCriteria {
	q := r.URL.Query()
	return domain.FilterCriteria{
		Term:     q.Get("q"),
		Country:  q.Get("country"),
		Category: q.Get("category"),
	}.Normalized()
}

const maxPageSize = 100

// pageSizeFrom reads ?page_size, falling back to def for anything unusable.
func pageSizeFrom(r *http.Request, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page_size")))
	if err != nil || n < 1 {
		return def
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
