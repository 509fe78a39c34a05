package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gulfjobs-web/internal/apply"
	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
	"gulfjobs-web/internal/listing"
)

type APIHandler struct {
	Deps
}

type jobsResponse struct {
	listing.Page
	Criteria   domain.FilterCriteria `json:"criteria"`
	Countries  []string              `json:"countries"`
	Categories []string              `json:"categories"`
}

func (h APIHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	c := criteriaFrom(r)
	page := listing.ParsePage(r.URL.Query().Get("page"))
	size := pageSizeFrom(r, h.PageSize)

	res := h.Listings.Load(r.Context())
	if res.Discarded() {
		return
	}
	if res.Err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", listing.FailedToLoadMessage)
		return
	}
	view := listing.BuildView(res, c, size, page)
	WriteJSON(w, http.StatusOK, jobsResponse{
		Page:       view.Page,
		Criteria:   view.Criteria,
		Countries:  view.Countries,
		Categories: view.Categories,
	})
}

func (h APIHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.Listings.Get(r.Context(), r.PathValue("id"))
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, j)
	case r.Context().Err() != nil:
	case errors.Is(err, backend.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", listing.NotFoundMessage)
	default:
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", listing.FailedToLoadMessage)
	}
}

func (h APIHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var f apply.Form
	if err := dec.Decode(&f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if dec.More() {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: trailing data")
		return
	}

	// a missing job_id is left to validation; a given one must exist
	if id := strings.TrimSpace(f.JobID); id != "" {
		j, err := h.Listings.Get(r.Context(), id)
		switch {
		case err == nil:
			f.JobID = j.ID
		case r.Context().Err() != nil:
			return
		case errors.Is(err, backend.ErrNotFound):
			WriteError(w, r, http.StatusNotFound, "not_found", listing.NotFoundMessage)
			return
		default:
			WriteError(w, r, http.StatusBadGateway, "backend_unavailable", listing.FailedToLoadMessage)
			return
		}
	}

	token := strings.TrimSpace(r.Header.Get("X-Form-Token"))
	out := h.Registry.Submit(r.Context(), token, f)
	if r.Context().Err() != nil {
		return
	}

	switch {
	case out.State == apply.Submitted:
		h.Hub.PublishApplication(RequestIDFrom(r.Context()), out.Application.JobID)
		WriteJSON(w, http.StatusCreated, out.Application)
	case errors.Is(out.Err, apply.ErrInvalid):
		WriteValidationError(w, r, out.Errors)
	case errors.Is(out.Err, apply.ErrSubmitInFlight):
		WriteError(w, r, http.StatusConflict, "submit_in_flight", apply.InFlightMessage)
	default:
		WriteError(w, r, http.StatusBadGateway, "submit_failed", apply.FailedMessage)
	}
}
