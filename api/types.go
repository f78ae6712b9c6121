package api

import (
	"fmt"
	"time"
)

// FilmPreview is the summary record used in film listings
type FilmPreview struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	PreviewImage     string `json:"previewImage"`
	PreviewVideoLink string `json:"previewVideoLink,omitempty"`
	Genre            string `json:"genre"`
	Released         int    `json:"released,omitempty"`
}

// FilmDetails is the full record of a single film
type FilmDetails struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	PosterImage     string   `json:"posterImage"`
	BackgroundImage string   `json:"backgroundImage"`
	BackgroundColor string   `json:"backgroundColor"`
	VideoLink       string   `json:"videoLink"`
	Description     string   `json:"description"`
	Rating          float64  `json:"rating"`
	ScoresCount     int      `json:"scoresCount"`
	Director        string   `json:"director"`
	Starring        []string `json:"starring"`
	RunTime         int      `json:"runTime"`
	Genre           string   `json:"genre"`
	Released        int      `json:"released"`
	IsFavorite      bool     `json:"isFavorite"`
}

// RatingLevel returns the textual rating grade shown next to the score
func (f *FilmDetails) RatingLevel() string {
	switch {
	case f.Rating >= 10:
		return "Awesome"
	case f.Rating >= 8:
		return "Very good"
	case f.Rating >= 5:
		return "Good"
	case f.Rating >= 3:
		return "Normal"
	default:
		return "Bad"
	}
}

// FormattedRunTime renders the run time as "1h 39m"
func (f *FilmDetails) FormattedRunTime() string {
	hours, minutes := f.RunTime/60, f.RunTime%60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FilmPromo is the promoted film shown on the landing view
type FilmPromo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PosterImage     string `json:"posterImage"`
	BackgroundImage string `json:"backgroundImage"`
	VideoLink       string `json:"videoLink"`
	Genre           string `json:"genre"`
	Released        int    `json:"released"`
	IsFavorite      bool   `json:"isFavorite"`
}

// ReviewFilm is a review attached to a film
type ReviewFilm struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	User    string    `json:"user"`
	Comment string    `json:"comment"`
	Rating  float64   `json:"rating"`
}

// UserData is the authenticated user's profile as returned by the login endpoint
type UserData struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Email     string `json:"email"`
	Token     string `json:"token,omitempty"`
}

// AuthData is the login request payload. It is never persisted.
type AuthData struct {
	Login    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// ReviewData is the body of a new review
type ReviewData struct {
	Comment string  `json:"comment" validate:"min=50,max=400"`
	Rating  float64 `json:"rating" validate:"min=1,max=10"`
}

// FavoriteStatus is the target state of a favorite toggle
type FavoriteStatus int

const (
	// FavoriteRemove removes a film from the favorites list
	FavoriteRemove FavoriteStatus = iota
	// FavoriteAdd adds a film to the favorites list
	FavoriteAdd
)

// String returns the string representation of a FavoriteStatus
func (s FavoriteStatus) String() string {
	switch s {
	case FavoriteRemove:
		return "REMOVE"
	case FavoriteAdd:
		return "ADD"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether the status is one the API accepts
func (s FavoriteStatus) Valid() bool {
	return s == FavoriteRemove || s == FavoriteAdd
}
