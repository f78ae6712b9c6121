package actions

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LoadMain runs the start-up fetches concurrently: films, promo film and
// the session check. The group has no shared cancellation, so one failed
// fetch does not cut the others short.
func (a *Actions) LoadMain(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error { return a.FetchFilms(ctx) })
	g.Go(func() error { return a.FetchFilmPromo(ctx) })
	g.Go(func() error {
		a.CheckAuth(ctx)
		return nil
	})

	return g.Wait()
}

// LoadFilmPage fetches a film, its reviews and similar films concurrently
func (a *Actions) LoadFilmPage(ctx context.Context, filmID string) error {
	var g errgroup.Group

	g.Go(func() error { return a.FetchFilmByID(ctx, filmID) })
	g.Go(func() error { return a.FetchCommentsByFilmID(ctx, filmID) })
	g.Go(func() error { return a.FetchSimilarByFilmID(ctx, filmID) })

	return g.Wait()
}
