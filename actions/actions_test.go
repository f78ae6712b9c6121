package actions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/wtw/api"
	"github.com/s0up4200/wtw/apitest"
	"github.com/s0up4200/wtw/nav"
	"github.com/s0up4200/wtw/state"
	"github.com/s0up4200/wtw/token"
)

// mockRedirector implements nav.Redirector for testing
type mockRedirector struct {
	mock.Mock
}

func (m *mockRedirector) RedirectTo(route nav.AppRoute) {
	m.Called(route)
}

type fixture struct {
	server     *apitest.Server
	store      *state.Store
	tokens     *token.MemoryStore
	redirector *mockRedirector
	actions    *Actions
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		server:     apitest.NewServer(t),
		store:      state.New(),
		tokens:     token.NewMemoryStore(),
		redirector: &mockRedirector{},
	}

	client, err := api.NewClient(f.server.URL, f.tokens, zerolog.Nop())
	require.NoError(t, err)

	f.actions = New(client, f.store, f.tokens, f.redirector, zerolog.Nop(), opts...)
	return f
}

// signIn gives the fixture a valid stored session
func (f *fixture) signIn(t *testing.T) {
	t.Helper()
	f.server.StartSession("session-token")
	require.NoError(t, f.tokens.Save("session-token"))
}

var (
	macbeth = api.FilmDetails{
		ID:          "42",
		Name:        "Macbeth",
		PosterImage: "macbeth.jpg",
		Description: "Macbeth, the Thane of Glamis, receives a prophecy.",
		Rating:      3.3,
		ScoresCount: 48798,
		Director:    "Justin Kurzel",
		Starring:    []string{"Michael Fassbender", "Marion Cotillard"},
		RunTime:     113,
		Genre:       "Drama",
		Released:    2015,
	}
	aviator = api.FilmPreview{ID: "7", Name: "Aviator", PreviewImage: "aviator.jpg", Genre: "Biography", Released: 2004}
	fargo   = api.FilmPreview{ID: "8", Name: "Fargo", PreviewImage: "fargo.jpg", Genre: "Crime", Released: 1996}
)

func strPtr(s string) *string { return &s }

func TestFetchFilms(t *testing.T) {
	f := newFixture(t)
	f.server.SetFilms(aviator, fargo)

	require.NoError(t, f.actions.FetchFilms(context.Background()))

	assert.Equal(t, []api.FilmPreview{aviator, fargo}, f.store.Films())
	assert.True(t, f.store.FilmsLoaded())
}

func TestFetchFilms_Refetch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.server.SetFilms(aviator, fargo)
	require.NoError(t, f.actions.FetchFilms(ctx))

	f.server.SetFilms(fargo)
	require.NoError(t, f.actions.FetchFilms(ctx))

	assert.Equal(t, []api.FilmPreview{fargo}, f.store.Films())
}

func TestFetchFilms_Error(t *testing.T) {
	f := newFixture(t)
	f.server.Fail(http.MethodGet, "/films", http.StatusInternalServerError)

	err := f.actions.FetchFilms(context.Background())
	require.Error(t, err)

	var reqErr *api.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Empty(t, f.store.Films())
	assert.False(t, f.store.FilmsLoaded())
}

func TestFetchFilmPromo(t *testing.T) {
	f := newFixture(t)
	promo := api.FilmPromo{ID: "1", Name: "The Grand Budapest Hotel", Genre: "Comedy", Released: 2014}
	f.server.SetPromo(promo)

	require.NoError(t, f.actions.FetchFilmPromo(context.Background()))

	got, ok := f.store.Promo()
	require.True(t, ok)
	assert.Equal(t, promo, got)
	assert.Equal(t, 1, f.server.CountCalls(http.MethodGet, "/films/promo"))
	assert.Zero(t, f.server.CountCalls(http.MethodGet, "/films"))
}

func TestFetchFavoriteFilms(t *testing.T) {
	t.Run("with session", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		f.server.SetFavorites(macbeth)

		require.NoError(t, f.actions.FetchFavoriteFilms(context.Background()))
		assert.Equal(t, []api.FilmDetails{macbeth}, f.store.Favorites())
	})

	t.Run("without session", func(t *testing.T) {
		f := newFixture(t)
		f.server.SetFavorites(macbeth)

		err := f.actions.FetchFavoriteFilms(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, api.ErrUnauthorized)
		assert.Empty(t, f.store.Favorites())
	})
}

func TestSetFavoriteFilm(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.server.AddFilm(macbeth, nil, nil)

	require.NoError(t, f.actions.SetFavoriteFilm(context.Background(), "42", api.FavoriteAdd))

	assert.Equal(t, 1, f.server.CountCalls(http.MethodPost, "/favorite/42/1"))
	assert.Equal(t, 1, f.server.CountCalls(http.MethodGet, "/favorite"))

	calls := f.server.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, http.MethodGet, calls[1].Method)

	want := macbeth
	want.IsFavorite = true
	assert.Equal(t, []api.FilmDetails{want}, f.store.Favorites())

	require.NoError(t, f.actions.SetFavoriteFilm(context.Background(), "42", api.FavoriteRemove))
	assert.Empty(t, f.store.Favorites())
}

func TestSetFavoriteFilm_PostFails(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.server.Fail(http.MethodPost, "/favorite/42/1", http.StatusBadRequest)

	err := f.actions.SetFavoriteFilm(context.Background(), "42", api.FavoriteAdd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "film 42")
	assert.Zero(t, f.server.CountCalls(http.MethodGet, "/favorite"))
}

// mockRequester implements api.Requester for testing
type mockRequester struct {
	mock.Mock
}

func (m *mockRequester) Get(ctx context.Context, path string, out any) error {
	return m.Called(ctx, path, out).Error(0)
}

func (m *mockRequester) Post(ctx context.Context, path string, body, out any) error {
	return m.Called(ctx, path, body, out).Error(0)
}

func (m *mockRequester) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func TestSetFavoriteFilm_WritesResponseVerbatim(t *testing.T) {
	ctx := context.Background()
	favorites := []api.FilmDetails{{ID: "42", Name: "Macbeth", IsFavorite: true}, {ID: "3", Name: "Snatch", IsFavorite: true}}

	requester := &mockRequester{}
	requester.On("Post", ctx, "/favorite/42/1", nil, nil).Return(nil).Once()
	requester.On("Get", ctx, "/favorite", mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(2).(*[]api.FilmDetails)
		*out = favorites
	}).Return(nil).Once()

	store := state.New()
	a := New(requester, store, token.NewMemoryStore(), &mockRedirector{}, zerolog.Nop())

	require.NoError(t, a.SetFavoriteFilm(ctx, "42", api.FavoriteAdd))

	requester.AssertExpectations(t)
	requester.AssertNumberOfCalls(t, "Post", 1)
	requester.AssertNumberOfCalls(t, "Get", 1)
	assert.Equal(t, favorites, store.Favorites())
}

func TestFetchFilmByID(t *testing.T) {
	f := newFixture(t)
	f.server.AddFilm(macbeth, nil, nil)

	require.NoError(t, f.actions.FetchFilmByID(context.Background(), "42"))

	got, ok := f.store.Film()
	require.True(t, ok)
	assert.Equal(t, macbeth, got)

	err := f.actions.FetchFilmByID(context.Background(), "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)

	// The previous film stays in place after a failed fetch
	got, _ = f.store.Film()
	assert.Equal(t, "42", got.ID)
}

func TestFetchCommentsByFilmID(t *testing.T) {
	f := newFixture(t)
	comments := []api.ReviewFilm{
		{ID: "1", User: "Kate Muir", Comment: "Discerning travellers will love it.", Rating: 8.9, Date: time.Date(2019, 5, 8, 14, 13, 56, 0, time.UTC)},
	}
	f.server.AddFilm(macbeth, comments, nil)

	require.NoError(t, f.actions.FetchCommentsByFilmID(context.Background(), "42"))
	assert.Equal(t, comments, f.store.Comments())

	// Unknown films have no reviews
	require.NoError(t, f.actions.FetchCommentsByFilmID(context.Background(), "1000"))
	assert.Empty(t, f.store.Comments())
}

func TestFetchSimilarByFilmID(t *testing.T) {
	f := newFixture(t)
	f.server.AddFilm(macbeth, nil, []api.FilmPreview{aviator, fargo})

	require.NoError(t, f.actions.FetchSimilarByFilmID(context.Background(), "42"))

	assert.Equal(t, []api.FilmPreview{aviator, fargo}, f.store.Similar())
	assert.Equal(t, 1, f.server.CountCalls(http.MethodGet, "/films/42/similar"))
}

func TestAddReview(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.server.AddFilm(macbeth, nil, nil)
	f.server.SetFavorites(macbeth)

	review := api.ReviewData{Comment: strings.Repeat("Gripping. ", 6), Rating: 9}
	require.NoError(t, f.actions.AddReview(context.Background(), "42", review))

	calls := f.server.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/comments/42", calls[0].Path)
	assert.JSONEq(t, `{"comment":"`+review.Comment+`","rating":9}`, calls[0].Body)

	// The follow-up refetch targets favorites, not comments
	assert.Equal(t, http.MethodGet, calls[1].Method)
	assert.Equal(t, "/favorite", calls[1].Path)
	assert.Zero(t, f.server.CountCalls(http.MethodGet, "/comments/42"))
	assert.Equal(t, []api.FilmDetails{macbeth}, f.store.Favorites())
	assert.Empty(t, f.store.Comments())
}

func TestAddReview_Unauthorized(t *testing.T) {
	f := newFixture(t)

	err := f.actions.AddReview(context.Background(), "42", api.ReviewData{Comment: "x", Rating: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Zero(t, f.server.CountCalls(http.MethodGet, "/favorite"))
}

func TestCheckAuth(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		f.server.SetFavorites(macbeth)

		f.actions.CheckAuth(context.Background())

		assert.Equal(t, state.AuthAuthenticated, f.store.AuthorizationStatus())
		assert.Equal(t, []api.FilmDetails{macbeth}, f.store.Favorites())
	})

	t.Run("rejected session", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.tokens.Save("stale-token"))

		f.actions.CheckAuth(context.Background())

		assert.Equal(t, state.AuthNotAuthenticated, f.store.AuthorizationStatus())
		assert.Zero(t, f.server.CountCalls(http.MethodGet, "/favorite"))
	})

	t.Run("server unreachable", func(t *testing.T) {
		f := newFixture(t)
		f.server.Close()

		assert.NotPanics(t, func() { f.actions.CheckAuth(context.Background()) })
		assert.Equal(t, state.AuthNotAuthenticated, f.store.AuthorizationStatus())
	})

	t.Run("favorites refetch fails", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		f.server.Fail(http.MethodGet, "/favorite", http.StatusInternalServerError)

		f.actions.CheckAuth(context.Background())

		assert.Equal(t, state.AuthAuthenticated, f.store.AuthorizationStatus())
	})
}

// recordingTokens appends to a shared event log on every write
type recordingTokens struct {
	*token.MemoryStore
	record func(string)
}

func (r *recordingTokens) Save(tok string) error {
	r.record("token:save")
	return r.MemoryStore.Save(tok)
}

func TestLogin(t *testing.T) {
	server := apitest.NewServer(t)
	server.SetUser(api.UserData{Name: "Keks", AvatarURL: "img/keks.jpg", Token: "issued-token"})
	server.SetFavorites(macbeth)

	var mu sync.Mutex
	var events []string
	record := func(e string) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}

	tokens := &recordingTokens{MemoryStore: token.NewMemoryStore(), record: record}
	client, err := api.NewClient(server.URL, tokens, zerolog.Nop())
	require.NoError(t, err)

	store := state.New()
	store.Subscribe(func(s state.Slice) { record(string(s)) })
	redirector := nav.Func(func(route nav.AppRoute) { record("redirect:" + string(route)) })

	a := New(client, store, tokens, redirector, zerolog.Nop())
	require.NoError(t, a.Login(context.Background(), api.AuthData{Login: "keks@htmlacademy.ru", Password: "secret1"}))

	assert.Equal(t, []string{
		"token:save",
		string(state.SliceUser),
		string(state.SliceAuth),
		string(state.SliceFavorites),
		"redirect:/",
	}, events)

	assert.Equal(t, "issued-token", tokens.Read())

	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, api.UserData{Email: "keks@htmlacademy.ru", AvatarURL: "img/keks.jpg", Name: "Keks"}, user)
	assert.Equal(t, state.AuthAuthenticated, store.AuthorizationStatus())
	assert.Equal(t, []api.FilmDetails{macbeth}, store.Favorites())

	calls := server.Calls()
	require.Len(t, calls, 2)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &body))
	assert.Equal(t, map[string]string{"email": "keks@htmlacademy.ru", "password": "secret1"}, body)

	// The favorites refetch carries the freshly saved token
	assert.Equal(t, "/favorite", calls[1].Path)
	assert.Equal(t, "issued-token", calls[1].Token)
}

func TestLogin_Rejected(t *testing.T) {
	f := newFixture(t)
	f.server.Fail(http.MethodPost, "/login", http.StatusBadRequest)

	err := f.actions.Login(context.Background(), api.AuthData{Login: "keks@htmlacademy.ru", Password: "secret1"})
	require.Error(t, err)

	assert.Empty(t, f.tokens.Read())
	assert.Equal(t, state.AuthUnknown, f.store.AuthorizationStatus())
	_, ok := f.store.User()
	assert.False(t, ok)
	f.redirector.AssertNotCalled(t, "RedirectTo", mock.Anything)
}

func TestLogin_FavoritesRefetchFails(t *testing.T) {
	f := newFixture(t)
	f.server.Fail(http.MethodGet, "/favorite", http.StatusInternalServerError)
	f.redirector.On("RedirectTo", nav.RouteMain).Once()

	err := f.actions.Login(context.Background(), api.AuthData{Login: "keks@htmlacademy.ru", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logged in but failed to fetch favorite films")

	// Writes made before the failing step stay in place
	assert.Equal(t, "issued-token", f.tokens.Read())
	assert.Equal(t, state.AuthAuthenticated, f.store.AuthorizationStatus())
	f.redirector.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	priorStates := []struct {
		name  string
		setup func(t *testing.T, f *fixture)
	}{
		{
			name:  "unknown status",
			setup: func(t *testing.T, f *fixture) {},
		},
		{
			name: "signed in with favorites",
			setup: func(t *testing.T, f *fixture) {
				f.signIn(t)
				f.store.SetAuthorizationStatus(state.AuthAuthenticated)
				f.store.SetFavorites([]api.FilmDetails{macbeth})
			},
		},
		{
			name: "already signed out",
			setup: func(t *testing.T, f *fixture) {
				f.store.SetAuthorizationStatus(state.AuthNotAuthenticated)
			},
		},
	}

	for _, tt := range priorStates {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			require.NoError(t, f.actions.Logout(context.Background()))

			assert.Equal(t, state.AuthNotAuthenticated, f.store.AuthorizationStatus())
			assert.Equal(t, []api.FilmDetails{}, f.store.Favorites())
			assert.Empty(t, f.tokens.Read())

			// No credential on subsequent requests
			require.NoError(t, f.actions.FetchFilms(context.Background()))
			calls := f.server.Calls()
			assert.Empty(t, calls[len(calls)-1].Token)
		})
	}
}

func TestLogout_Fails(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.server.Fail(http.MethodDelete, "/logout", http.StatusInternalServerError)

	require.Error(t, f.actions.Logout(context.Background()))
	assert.Equal(t, "session-token", f.tokens.Read())
}

func TestClearError(t *testing.T) {
	const delay = 200 * time.Millisecond
	f := newFixture(t, WithClearErrorDelay(delay))

	f.store.SetError(strPtr("first"))

	start := time.Now()
	f.actions.ClearError()
	assert.Less(t, time.Since(start), delay, "ClearError must not block")

	time.Sleep(delay / 5)
	f.store.SetError(strPtr("newer"))

	msg, ok := f.store.Error()
	require.True(t, ok)
	assert.Equal(t, "newer", msg)

	// The clear scheduled by the first call still wipes the newer error
	assert.Eventually(t, func() bool {
		_, ok := f.store.Error()
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestClearError_Overlapping(t *testing.T) {
	f := newFixture(t, WithClearErrorDelay(50*time.Millisecond))
	f.store.SetError(strPtr("boom"))

	var cleared int
	var mu sync.Mutex
	f.store.Subscribe(func(s state.Slice) {
		if s == state.SliceError {
			mu.Lock()
			cleared++
			mu.Unlock()
		}
	})

	f.actions.ClearError()
	f.actions.ClearError()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return cleared == 2
	}, time.Second, 10*time.Millisecond)

	_, ok := f.store.Error()
	assert.False(t, ok)
}

func TestReportError(t *testing.T) {
	f := newFixture(t, WithClearErrorDelay(50*time.Millisecond))
	f.server.Fail(http.MethodGet, "/films/promo", http.StatusServiceUnavailable)

	err := f.actions.FetchFilmPromo(context.Background())
	require.Error(t, err)

	f.actions.ReportError(err)
	msg, ok := f.store.Error()
	require.True(t, ok)
	assert.Equal(t, "Service Unavailable", msg)

	assert.Eventually(t, func() bool {
		_, ok := f.store.Error()
		return !ok
	}, time.Second, 10*time.Millisecond)

	f.actions.ReportError(nil)
	_, ok = f.store.Error()
	assert.False(t, ok)
}

func TestNew_Defaults(t *testing.T) {
	a := New(&mockRequester{}, state.New(), token.NewMemoryStore(), &mockRedirector{}, zerolog.Nop())
	assert.Equal(t, DefaultClearErrorDelay, a.clearErrorDelay)

	a = New(&mockRequester{}, state.New(), token.NewMemoryStore(), &mockRedirector{}, zerolog.Nop(), WithClearErrorDelay(0))
	assert.Equal(t, DefaultClearErrorDelay, a.clearErrorDelay)
}
