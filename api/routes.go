package api

import (
	"fmt"
)

// API routes
const (
	RouteFilms    = "/films"
	RoutePromo    = "/films/promo"
	RouteFavorite = "/favorite"
	RouteComments = "/comments"
	RouteSimilar  = "/similar"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
)

// FilmPath returns the path of a single film
func FilmPath(filmID string) string {
	return fmt.Sprintf("%s/%s", RouteFilms, filmID)
}

// SimilarPath returns the path of the films similar to filmID
func SimilarPath(filmID string) string {
	return FilmPath(filmID) + RouteSimilar
}

// CommentsPath returns the path of a film's reviews
func CommentsPath(filmID string) string {
	return fmt.Sprintf("%s/%s", RouteComments, filmID)
}

// FavoritePath returns the path that toggles a film's favorite status
func FavoritePath(filmID string, status FavoriteStatus) string {
	return fmt.Sprintf("%s/%s/%d", RouteFavorite, filmID, status)
}
