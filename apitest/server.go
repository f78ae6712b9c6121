// Package apitest provides a fake What-to-Watch backend for tests. It
// serves the same routes as the real API, keeps favorites, reviews and
// sessions in memory, and records every request it receives.
package apitest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/s0up4200/wtw/api"
)

// Call is one request received by the server
type Call struct {
	Method string
	Path   string
	Token  string
	Body   string
}

// Server is a fake What-to-Watch API
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	films     []api.FilmPreview
	promo     api.FilmPromo
	details   map[string]api.FilmDetails
	comments  map[string][]api.ReviewFilm
	similar   map[string][]api.FilmPreview
	favorites []api.FilmDetails
	user      api.UserData
	sessions  map[string]bool
	failures  map[string]int
	calls     []Call
}

func init() {
	gin.SetMode(gin.TestMode)
}

// NewServer starts a fake server. It is closed when the test ends.
func NewServer(t testing.TB) *Server {
	s := &Server{
		films:     []api.FilmPreview{},
		details:   make(map[string]api.FilmDetails),
		comments:  make(map[string][]api.ReviewFilm),
		similar:   make(map[string][]api.FilmPreview),
		favorites: []api.FilmDetails{},
		user:      api.UserData{Name: "Keks", AvatarURL: "https://wtw.example.com/avatar.jpg", Token: "issued-token"},
		sessions:  make(map[string]bool),
		failures:  make(map[string]int),
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.recordAndFail)

	r.GET("/films", s.getFilms)
	r.GET("/films/:id", s.getFilm)
	r.GET("/films/:id/similar", s.getSimilar)
	r.GET("/films/promo", s.getPromo)
	r.GET("/comments/:id", s.getComments)
	r.POST("/login", s.postLogin)
	r.DELETE("/logout", s.deleteLogout)

	authed := r.Group("/", s.requireAuth)
	authed.GET("/favorite", s.getFavorites)
	authed.POST("/favorite/:id/:status", s.postFavorite)
	authed.POST("/comments/:id", s.postComment)
	authed.GET("/login", s.getLogin)

	return r
}

// SetFilms sets the catalog
func (s *Server) SetFilms(films ...api.FilmPreview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.films = films
}

// SetPromo sets the promo film
func (s *Server) SetPromo(promo api.FilmPromo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promo = promo
}

// AddFilm registers the details of a film along with its reviews and
// similar films
func (s *Server) AddFilm(film api.FilmDetails, comments []api.ReviewFilm, similar []api.FilmPreview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[film.ID] = film
	s.comments[film.ID] = comments
	s.similar[film.ID] = similar
}

// SetFavorites sets the favorites list returned by GET /favorite
func (s *Server) SetFavorites(films ...api.FilmDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = films
}

// SetUser sets the profile and token issued by POST /login
func (s *Server) SetUser(user api.UserData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// StartSession makes token a valid session token
func (s *Server) StartSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = true
}

// Fail makes every request matching method and path answer with status
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Calls returns the requests received so far
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// CountCalls returns how many requests matched method and path
func (s *Server) CountCalls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) recordAndFail(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Token:  c.GetHeader(api.DefaultTokenHeader),
		Body:   string(body),
	})
	status, fail := s.failures[c.Request.Method+" "+c.Request.URL.Path]
	s.mu.Unlock()

	if fail {
		abortWithError(c, status, http.StatusText(status))
		return
	}
	c.Next()
}

func (s *Server) requireAuth(c *gin.Context) {
	token := c.GetHeader(api.DefaultTokenHeader)

	s.mu.Lock()
	ok := token != "" && s.sessions[token]
	s.mu.Unlock()

	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Access denied.")
		return
	}
	c.Next()
}

func (s *Server) getFilms(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.films)
}

func (s *Server) getFilm(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.details[c.Param("id")]
	if !ok {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Film id %s does not exist", c.Param("id")))
		return
	}
	film.IsFavorite = s.isFavorite(film.ID)
	c.JSON(http.StatusOK, film)
}

func (s *Server) getSimilar(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, nonNil(s.similar[c.Param("id")]))
}

func (s *Server) getPromo(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.promo)
}

func (s *Server) getComments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, nonNil(s.comments[c.Param("id")]))
}

func (s *Server) getFavorites(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.favorites)
}

func (s *Server) postFavorite(c *gin.Context) {
	status, err := strconv.Atoi(c.Param("status"))
	if err != nil || !api.FavoriteStatus(status).Valid() {
		abortWithError(c, http.StatusBadRequest, "Status must be 0 or 1")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	film, ok := s.details[id]
	if !ok {
		film = api.FilmDetails{ID: id}
	}

	s.favorites = slices.DeleteFunc(s.favorites, func(f api.FilmDetails) bool { return f.ID == id })
	film.IsFavorite = api.FavoriteStatus(status) == api.FavoriteAdd
	if film.IsFavorite {
		s.favorites = append(s.favorites, film)
	}
	c.JSON(http.StatusOK, film)
}

func (s *Server) postComment(c *gin.Context) {
	var review api.ReviewData
	if err := c.ShouldBindJSON(&review); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	comment := api.ReviewFilm{
		ID:      strconv.Itoa(len(s.comments[id]) + 1),
		Date:    time.Now().UTC(),
		User:    s.user.Name,
		Comment: review.Comment,
		Rating:  review.Rating,
	}
	s.comments[id] = append(s.comments[id], comment)
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) getLogin(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.user)
}

func (s *Server) postLogin(c *gin.Context) {
	var auth api.AuthData
	if err := c.ShouldBindJSON(&auth); err != nil || auth.Login == "" || auth.Password == "" {
		abortWithError(c, http.StatusBadRequest, "Validation error: email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.user
	user.Email = auth.Login
	s.sessions[user.Token] = true
	c.JSON(http.StatusCreated, user)
}

func (s *Server) deleteLogout(c *gin.Context) {
	s.mu.Lock()
	delete(s.sessions, c.GetHeader(api.DefaultTokenHeader))
	s.mu.Unlock()

	c.Status(http.StatusNoContent)
}

// isFavorite must be called with s.mu held
func (s *Server) isFavorite(id string) bool {
	return slices.ContainsFunc(s.favorites, func(f api.FilmDetails) bool { return f.ID == id })
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"errorType": "COMMON_ERROR",
		"message":   message,
	})
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
