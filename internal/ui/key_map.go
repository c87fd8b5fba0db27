package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	search   key.Binding
	enter    key.Binding
	back     key.Binding
	favorite key.Binding
	remove   key.Binding
	genre    key.Binding
	sort     key.Binding
	more     key.Binding
	less     key.Binding
	loadMore key.Binding
	trending key.Binding
	open     key.Binding
	tab      key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		search:   key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "search")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		remove:   key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "remove")),
		genre:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		more:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "min rating up")),
		less:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "min rating down")),
		loadMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		trending: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trending")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "official site")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "favorites/results")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.enter, k.favorite, k.tab, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.search, k.enter, k.favorite, k.remove},
		{k.genre, k.sort, k.more, k.less},
		{k.loadMore, k.trending, k.open, k.tab},
		{k.back, k.help, k.quit},
	}
}
