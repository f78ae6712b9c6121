package actions

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/wtw/api"
	"github.com/s0up4200/wtw/state"
)

func TestLoadMain(t *testing.T) {
	f := newFixture(t)
	f.server.SetFilms(aviator, fargo)
	f.server.SetPromo(api.FilmPromo{ID: "1", Name: "Bohemian Rhapsody"})

	require.NoError(t, f.actions.LoadMain(context.Background()))

	assert.Len(t, f.store.Films(), 2)
	assert.True(t, f.store.FilmsLoaded())
	promo, ok := f.store.Promo()
	require.True(t, ok)
	assert.Equal(t, "Bohemian Rhapsody", promo.Name)
	assert.Equal(t, state.AuthNotAuthenticated, f.store.AuthorizationStatus())
}

func TestLoadMain_PartialFailure(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.server.SetFilms(aviator)
	f.server.Fail(http.MethodGet, "/films/promo", http.StatusInternalServerError)

	err := f.actions.LoadMain(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "promo")

	// The other fetches still completed
	assert.True(t, f.store.FilmsLoaded())
	assert.Equal(t, state.AuthAuthenticated, f.store.AuthorizationStatus())
}

func TestLoadFilmPage(t *testing.T) {
	f := newFixture(t)
	f.server.AddFilm(macbeth, []api.ReviewFilm{{ID: "1", Comment: "Bleak", Rating: 4}}, []api.FilmPreview{aviator})

	require.NoError(t, f.actions.LoadFilmPage(context.Background(), "42"))

	film, ok := f.store.Film()
	require.True(t, ok)
	assert.Equal(t, "Macbeth", film.Name)
	assert.Len(t, f.store.Comments(), 1)
	assert.Equal(t, []api.FilmPreview{aviator}, f.store.Similar())
}

func TestLoadFilmPage_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.actions.LoadFilmPage(context.Background(), "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)
}
