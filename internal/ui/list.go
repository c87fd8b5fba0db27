package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/showfinder/internal/formatter"
	"github.com/desertthunder/showfinder/internal/models"
)

var (
	_ list.Item = showItem{}
	_ list.Item = favoriteItem{}
)

// showItem wraps [models.Show] to implement [list.Item].
type showItem struct {
	show     models.Show
	favorite bool
}

func (i showItem) FilterValue() string { return i.show.Name }
func (i showItem) Title() string {
	if i.favorite {
		return i.show.Name + " ★"
	}
	return i.show.Name
}
func (i showItem) Description() string {
	return fmt.Sprintf("%s • Rating: %s", formatter.FormatYear(i.show.Year()), formatter.FormatRating(i.show.RatingValue()))
}

// favoriteItem wraps [models.Favorite] to implement [list.Item].
type favoriteItem struct {
	favorite models.Favorite
}

func (i favoriteItem) FilterValue() string { return i.favorite.Name }
func (i favoriteItem) Title() string       { return i.favorite.Name + " ★" }
func (i favoriteItem) Description() string {
	f := i.favorite
	return fmt.Sprintf("%s • Rating: %s", formatter.FormatYear(f.Year()), formatter.FormatRating(f.RatingValue()))
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}
