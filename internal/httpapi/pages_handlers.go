package httpapi

import (
	"errors"
	"net/http"

	"gulfjobs-web/internal/apply"
	"gulfjobs-web/internal/backend"
	"gulfjobs-web/internal/domain"
	"gulfjobs-web/internal/listing"
	"gulfjobs-web/internal/web"
)

const maxFormBytes = 64 << 10

type PagesHandler struct {
	Deps
}

func (h PagesHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.Renderer.Write(w, status, page, data); err != nil {
		h.Logger.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Str("page", page).Msg("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h PagesHandler) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, web.PageError, web.ErrorPage{Site: h.Site, Status: status, Message: msg})
}

func (h PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found")
}

func (h PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	res := h.Listings.Latest(r.Context(), h.HomeFeatured)
	if res.Discarded() {
		return
	}
	data := web.HomePage{Site: h.Site, Countries: web.GulfCountries, Featured: res.Jobs}
	if res.Err != nil {
		data.Error = listing.FailedToLoadMessage
	}
	h.render(w, r, http.StatusOK, web.PageHome, data)
}

func (h PagesHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	c := criteriaFrom(r)
	page := listing.ParsePage(r.URL.Query().Get("page"))

	res := h.Listings.Load(r.Context())
	if res.Discarded() {
		return
	}
	view := listing.BuildView(res, c, h.PageSize, page)

	status := http.StatusOK
	if view.Err != nil {
		status = http.StatusBadGateway
	}
	h.render(w, r, status, web.PageJobs, web.JobsPage{Site: h.Site, View: view})
}

// loadJob renders the not-found or failure page itself and reports false
// when there is nothing more to do.
func (h PagesHandler) loadJob(w http.ResponseWriter, r *http.Request) (domain.JobPosting, bool) {
	j, err := h.Listings.Get(r.Context(), r.PathValue("id"))
	switch {
	case err == nil:
		return j, true
	case r.Context().Err() != nil:
	case errors.Is(err, backend.ErrNotFound):
		h.renderError(w, r, http.StatusNotFound, listing.NotFoundMessage)
	default:
		h.renderError(w, r, http.StatusBadGateway, listing.FailedToLoadMessage)
	}
	return domain.JobPosting{}, false
}

func (h PagesHandler) Job(w http.ResponseWriter, r *http.Request) {
	j, ok := h.loadJob(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, web.PageJob, web.JobPage{
		Site:   h.Site,
		Job:    j,
		Form:   apply.Form{JobID: j.ID},
		Errors: apply.FieldErrors{},
		Token:  apply.NewToken(),
	})
}

func (h PagesHandler) Apply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	j, ok := h.loadJob(w, r)
	if !ok {
		return
	}

	form := apply.Form{
		// the posting in the URL is the one being applied for
		JobID:   j.ID,
		Name:    r.PostFormValue(apply.FieldName),
		Email:   r.PostFormValue(apply.FieldEmail),
		Phone:   r.PostFormValue(apply.FieldPhone),
		Message: r.PostFormValue(apply.FieldMessage),
	}
	token := r.PostFormValue("token")

	out := h.Registry.Submit(r.Context(), token, form)
	if r.Context().Err() != nil {
		return
	}

	data := web.JobPage{
		Site:    h.Site,
		Job:     j,
		Form:    out.Form,
		Errors:  out.Errors,
		Message: out.Message,
		Token:   token,
	}
	status := http.StatusOK
	switch {
	case out.State == apply.Submitted:
		data.Success = true
		data.Form = apply.Form{JobID: j.ID}
		data.Token = apply.NewToken()
		h.Hub.PublishApplication(RequestIDFrom(r.Context()), j.ID)
	case errors.Is(out.Err, apply.ErrSubmitInFlight):
		status = http.StatusConflict
	case errors.Is(out.Err, apply.ErrInvalid):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadGateway
	}
	if data.Token == "" {
		data.Token = apply.NewToken()
	}
	h.render(w, r, status, web.PageJob, data)
}
