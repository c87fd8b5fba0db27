// package models defines the data model for the show catalog client
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingValue is the sentinel used for absent ratings and premiere years.
//
// It sorts before every real value, so missing entries come first in ascending
// orders and last in descending ones.
const MissingValue = -1

// Image holds poster references for a show.
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Rating wraps the catalog's average rating, which may be null.
type Rating struct {
	Average *float64 `json:"average"`
}

// Channel is a broadcast network or streaming web channel.
type Channel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Schedule is the weekly airing slot of a show.
type Schedule struct {
	Time string   `json:"time"`
	Days []string `json:"days"`
}

// Show represents one catalog record.
type Show struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Image        *Image   `json:"image"`
	Rating       Rating   `json:"rating"`
	Premiered    string   `json:"premiered"`
	Ended        string   `json:"ended"`
	Genres       []string `json:"genres"`
	Status       string   `json:"status"`
	Language     string   `json:"language"`
	Network      *Channel `json:"network"`
	WebChannel   *Channel `json:"webChannel"`
	Schedule     Schedule `json:"schedule"`
	Summary      string   `json:"summary"`
	OfficialSite string   `json:"officialSite"`
}

// SearchResult is one entry of a title search response.
type SearchResult struct {
	Score float64 `json:"score"`
	Show  Show    `json:"show"`
}

// Shows unwraps search results into their show records, keeping relevance order.
func Shows(results []SearchResult) []Show {
	shows := make([]Show, len(results))
	for i, r := range results {
		shows[i] = r.Show
	}
	return shows
}

// Year returns the premiere year, or [MissingValue] when unknown.
func (s Show) Year() int {
	return yearOf(s.Premiered)
}

// RatingValue returns the average rating, or [MissingValue] when unrated.
func (s Show) RatingValue() float64 {
	if s.Rating.Average == nil {
		return MissingValue
	}
	return *s.Rating.Average
}

// Poster returns the medium poster URL or "".
func (s Show) Poster() string {
	if s.Image == nil {
		return ""
	}
	return s.Image.Medium
}

// LargePoster prefers the original-size poster, falling back to the medium one.
func (s Show) LargePoster() string {
	if s.Image == nil {
		return ""
	}
	if s.Image.Original != "" {
		return s.Image.Original
	}
	return s.Image.Medium
}

// NetworkName returns the broadcast network name, falling back to the web channel.
func (s Show) NetworkName() string {
	if s.Network != nil && s.Network.Name != "" {
		return s.Network.Name
	}
	if s.WebChannel != nil {
		return s.WebChannel.Name
	}
	return ""
}

// HasGenre reports whether genre is one of the show's labels (exact match).
func (s Show) HasGenre(genre string) bool {
	for _, g := range s.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Favorite is the persisted projection of a [Show].
type Favorite struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
	Rating    *float64 `json:"rating"`
	Premiered *string  `json:"premiered"`
}

// NewFavorite projects a show into a [Favorite].
func NewFavorite(s Show) Favorite {
	fav := Favorite{
		ID:    s.ID,
		Name:  s.Name,
		Image: s.Poster(),
	}
	if s.Rating.Average != nil {
		r := *s.Rating.Average
		fav.Rating = &r
	}
	if s.Premiered != "" {
		p := s.Premiered
		fav.Premiered = &p
	}
	return fav
}

// Validate checks the invariants a persisted favorite must satisfy.
func (f Favorite) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("favorite id must be positive, got %d", f.ID)
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("favorite %d has an empty name", f.ID)
	}
	return nil
}

// Year returns the premiere year of the favorite, or [MissingValue].
func (f Favorite) Year() int {
	if f.Premiered == nil {
		return MissingValue
	}
	return yearOf(*f.Premiered)
}

// RatingValue returns the stored rating, or [MissingValue].
func (f Favorite) RatingValue() float64 {
	if f.Rating == nil {
		return MissingValue
	}
	return *f.Rating
}

func yearOf(date string) int {
	if len(date) < 4 {
		return MissingValue
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return MissingValue
	}
	return year
}
