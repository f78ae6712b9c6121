// Package state holds the shared application state the presentation layer
// renders from. Every slice is replaced wholesale by its setter; selectors
// return copies so callers cannot mutate the store.
package state

import (
	"slices"
	"sync"

	"github.com/s0up4200/wtw/api"
)

// Slice names a subdivision of the store
type Slice string

// Store slices
const (
	SliceFilms       Slice = "films"
	SliceFilmsLoaded Slice = "filmsLoaded"
	SliceFilm        Slice = "film"
	SlicePromo       Slice = "promo"
	SliceComments    Slice = "comments"
	SliceSimilar     Slice = "similar"
	SliceFavorites   Slice = "favorites"
	SliceUser        Slice = "user"
	SliceAuth        Slice = "authorizationStatus"
	SliceError       Slice = "error"
)

// AllGenres is the genre entry that matches every film
const AllGenres = "All genres"

// MaxGenres caps the number of genre tabs, not counting AllGenres
const MaxGenres = 9

// Listener is notified after a slice has been written
type Listener func(Slice)

// Store is the single shared state container
type Store struct {
	mu sync.RWMutex

	films       []api.FilmPreview
	filmsLoaded bool
	film        *api.FilmDetails
	promo       *api.FilmPromo
	comments    []api.ReviewFilm
	similar     []api.FilmPreview
	favorites   []api.FilmDetails
	user        *api.UserData
	authStatus  AuthorizationStatus
	err         *string

	listeners map[int]Listener
	nextID    int
}

// New creates a store with every collection empty and the
// authorization status unknown
func New() *Store {
	return &Store{
		films:     []api.FilmPreview{},
		comments:  []api.ReviewFilm{},
		similar:   []api.FilmPreview{},
		favorites: []api.FilmDetails{},
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// update applies fn under the write lock and notifies listeners after
// releasing it
func (s *Store) update(slice Slice, fn func()) {
	s.mu.Lock()
	fn()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(slice)
	}
}

// SetFilms replaces the films list
func (s *Store) SetFilms(films []api.FilmPreview) {
	s.update(SliceFilms, func() { s.films = cloneOrEmpty(films) })
}

// SetFilmsLoaded sets the films loaded flag
func (s *Store) SetFilmsLoaded(loaded bool) {
	s.update(SliceFilmsLoaded, func() { s.filmsLoaded = loaded })
}

// SetFilm replaces the current film details
func (s *Store) SetFilm(film api.FilmDetails) {
	film.Starring = slices.Clone(film.Starring)
	s.update(SliceFilm, func() { s.film = &film })
}

// SetPromo replaces the promo film
func (s *Store) SetPromo(promo api.FilmPromo) {
	s.update(SlicePromo, func() { s.promo = &promo })
}

// SetComments replaces the current film's reviews
func (s *Store) SetComments(comments []api.ReviewFilm) {
	s.update(SliceComments, func() { s.comments = cloneOrEmpty(comments) })
}

// SetSimilar replaces the similar films list
func (s *Store) SetSimilar(films []api.FilmPreview) {
	s.update(SliceSimilar, func() { s.similar = cloneOrEmpty(films) })
}

// SetFavorites replaces the favorites list
func (s *Store) SetFavorites(films []api.FilmDetails) {
	s.update(SliceFavorites, func() { s.favorites = cloneOrEmpty(films) })
}

// SetUser replaces the user profile. The token is never kept in the store.
func (s *Store) SetUser(user api.UserData) {
	user.Token = ""
	s.update(SliceUser, func() { s.user = &user })
}

// SetAuthorizationStatus records the session state. Only the session
// check, login and logout operations call it.
func (s *Store) SetAuthorizationStatus(status AuthorizationStatus) {
	s.update(SliceAuth, func() { s.authStatus = status })
}

// SetError sets the last error; nil clears it
func (s *Store) SetError(msg *string) {
	var v *string
	if msg != nil {
		m := *msg
		v = &m
	}
	s.update(SliceError, func() { s.err = v })
}

// Films returns the films list
func (s *Store) Films() []api.FilmPreview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.films)
}

// FilmsLoaded reports whether the films list has been fetched
func (s *Store) FilmsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filmsLoaded
}

// Film returns the current film details, if any
func (s *Store) Film() (api.FilmDetails, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.film == nil {
		return api.FilmDetails{}, false
	}
	film := *s.film
	film.Starring = slices.Clone(film.Starring)
	return film, true
}

// Promo returns the promo film, if any
func (s *Store) Promo() (api.FilmPromo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.promo == nil {
		return api.FilmPromo{}, false
	}
	return *s.promo, true
}

// Comments returns the current film's reviews
func (s *Store) Comments() []api.ReviewFilm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.comments)
}

// Similar returns the similar films list
func (s *Store) Similar() []api.FilmPreview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.similar)
}

// Favorites returns the favorites list
func (s *Store) Favorites() []api.FilmDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favorites)
}

// User returns the user profile, if any
func (s *Store) User() (api.UserData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.UserData{}, false
	}
	return *s.user, true
}

// AuthorizationStatus returns the session state
func (s *Store) AuthorizationStatus() AuthorizationStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authStatus
}

// Error returns the last error, if any
func (s *Store) Error() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err == nil {
		return "", false
	}
	return *s.err, true
}

// Genres returns AllGenres followed by the distinct genres of the films
// list in order of first appearance, capped at MaxGenres
func (s *Store) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genres := []string{AllGenres}
	seen := make(map[string]bool)
	for _, f := range s.films {
		if f.Genre == "" || seen[f.Genre] {
			continue
		}
		seen[f.Genre] = true
		genres = append(genres, f.Genre)
		if len(genres) > MaxGenres {
			break
		}
	}
	return genres
}

// FilmsByGenre returns the films of the given genre; AllGenres or ""
// returns the whole list
func (s *Store) FilmsByGenre(genre string) []api.FilmPreview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if genre == "" || genre == AllGenres {
		return slices.Clone(s.films)
	}

	films := []api.FilmPreview{}
	for _, f := range s.films {
		if f.Genre == genre {
			films = append(films, f)
		}
	}
	return films
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
