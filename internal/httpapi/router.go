package httpapi

import (
	"net/http"

	"gulfjobs-web/internal/web"
)

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Pages
	ph := PagesHandler{Deps: d}
	mux.HandleFunc("/{$}", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Home,
	}))
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Jobs,
	}))
	mux.HandleFunc("/jobs/{id}", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Job,
	}))
	mux.HandleFunc("/jobs/{id}/apply", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ph.Apply,
	}))
	mux.Handle("/static/", http.StripPrefix("/static/", web.Static()))

	// JSON API
	ah := APIHandler{Deps: d}
	mux.HandleFunc("/api/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.ListJobs,
	}))
	mux.HandleFunc("/api/jobs/{id}", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.GetJob,
	}))
	mux.HandleFunc("/api/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.CreateApplication,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	hh := HealthHandler{Driver: d.Driver, Version: d.Version}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	mux.HandleFunc("/", ph.NotFound)

	return mux
}

// NewHandler is the full middleware stack around NewMux.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover(d.Logger), AccessLog(d.Logger), Cors)
}
