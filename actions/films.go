package actions

import (
	"context"
	"fmt"

	"github.com/s0up4200/wtw/api"
)

// FetchFilms loads the catalog and marks it loaded
func (a *Actions) FetchFilms(ctx context.Context) error {
	films, err := api.Get[[]api.FilmPreview](ctx, a.api, api.RouteFilms)
	if err != nil {
		return fmt.Errorf("failed to fetch films: %w", err)
	}

	a.store.SetFilms(films)
	a.store.SetFilmsLoaded(true)

	a.logger.Debug().Int("count", len(films)).Msg("Retrieved films")
	return nil
}

// FetchFilmPromo loads the promo film
func (a *Actions) FetchFilmPromo(ctx context.Context) error {
	promo, err := api.Get[api.FilmPromo](ctx, a.api, api.RoutePromo)
	if err != nil {
		return fmt.Errorf("failed to fetch promo film: %w", err)
	}

	a.store.SetPromo(promo)
	return nil
}

// FetchFavoriteFilms loads the user's favorites
func (a *Actions) FetchFavoriteFilms(ctx context.Context) error {
	favorites, err := api.Get[[]api.FilmDetails](ctx, a.api, api.RouteFavorite)
	if err != nil {
		return fmt.Errorf("failed to fetch favorite films: %w", err)
	}

	a.store.SetFavorites(favorites)

	a.logger.Debug().Int("count", len(favorites)).Msg("Retrieved favorite films")
	return nil
}

// SetFavoriteFilm toggles a film's favorite status, then refetches the
// favorites list rather than patching it locally
func (a *Actions) SetFavoriteFilm(ctx context.Context, filmID string, status api.FavoriteStatus) error {
	if err := a.api.Post(ctx, api.FavoritePath(filmID, status), nil, nil); err != nil {
		return fmt.Errorf("failed to set favorite status of film %s: %w", filmID, err)
	}

	a.logger.Debug().Str("film_id", filmID).Stringer("status", status).Msg("Updated favorite status")

	return a.FetchFavoriteFilms(ctx)
}

// FetchFilmByID loads the details of one film
func (a *Actions) FetchFilmByID(ctx context.Context, filmID string) error {
	film, err := api.Get[api.FilmDetails](ctx, a.api, api.FilmPath(filmID))
	if err != nil {
		return fmt.Errorf("failed to fetch film %s: %w", filmID, err)
	}

	a.store.SetFilm(film)
	return nil
}

// FetchCommentsByFilmID loads the reviews of one film
func (a *Actions) FetchCommentsByFilmID(ctx context.Context, filmID string) error {
	comments, err := api.Get[[]api.ReviewFilm](ctx, a.api, api.CommentsPath(filmID))
	if err != nil {
		return fmt.Errorf("failed to fetch comments of film %s: %w", filmID, err)
	}

	a.store.SetComments(comments)
	return nil
}

// FetchSimilarByFilmID loads the films similar to one film
func (a *Actions) FetchSimilarByFilmID(ctx context.Context, filmID string) error {
	similar, err := api.Get[[]api.FilmPreview](ctx, a.api, api.SimilarPath(filmID))
	if err != nil {
		return fmt.Errorf("failed to fetch films similar to %s: %w", filmID, err)
	}

	a.store.SetSimilar(similar)
	return nil
}

// AddReview posts a review and then refetches the favorites list.
// The comments slice is not refreshed here; callers that want the new
// review listed call FetchCommentsByFilmID.
func (a *Actions) AddReview(ctx context.Context, filmID string, review api.ReviewData) error {
	if err := a.api.Post(ctx, api.CommentsPath(filmID), review, nil); err != nil {
		return fmt.Errorf("failed to add review to film %s: %w", filmID, err)
	}

	a.logger.Debug().Str("film_id", filmID).Float64("rating", review.Rating).Msg("Posted review")

	return a.FetchFavoriteFilms(ctx)
}
