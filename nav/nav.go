// Package nav carries navigation signals from the data layer to the
// presentation layer.
package nav

import (
	"strings"

	"github.com/rs/zerolog"
)

// AppRoute is a presentation-layer route
type AppRoute string

// Application routes
const (
	RouteMain     AppRoute = "/"
	RouteLogin    AppRoute = "/login"
	RouteMyList   AppRoute = "/mylist"
	RouteFilm     AppRoute = "/films/:id"
	RouteReview   AppRoute = "/films/:id/review"
	RoutePlayer   AppRoute = "/player/:id"
	RouteNotFound AppRoute = "*"
)

// WithID fills the :id placeholder of a route
func (r AppRoute) WithID(id string) AppRoute {
	return AppRoute(strings.Replace(string(r), ":id", id, 1))
}

// Redirector instructs the presentation layer to change the active view
type Redirector interface {
	RedirectTo(route AppRoute)
}

// Func adapts a plain function to Redirector
type Func func(route AppRoute)

// RedirectTo calls f(route)
func (f Func) RedirectTo(route AppRoute) {
	f(route)
}

// LogRedirector logs navigation signals. It is used where no view exists
// to switch, such as the command line.
type LogRedirector struct {
	logger zerolog.Logger
}

// NewLogRedirector creates a redirector writing to logger
func NewLogRedirector(logger zerolog.Logger) *LogRedirector {
	return &LogRedirector{logger: logger}
}

// RedirectTo logs the route
func (r *LogRedirector) RedirectTo(route AppRoute) {
	r.logger.Info().Str("route", string(route)).Msg("Navigate")
}
