package httpapi

import (
	"github.com/rs/zerolog"

	"gulfjobs-web/internal/apply"
	"gulfjobs-web/internal/events"
	"gulfjobs-web/internal/listing"
	"gulfjobs-web/internal/web"
)

type Deps struct {
	Listings listing.Store
	Registry *apply.Registry
	Hub      *events.Hub
	Renderer *web.Renderer
	Logger   zerolog.Logger

	Site         web.Site
	PageSize     int
	HomeFeatured int

	// Driver and Version are reported by /health.
	Driver  string
	Version string
}
