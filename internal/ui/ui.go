package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/showfinder/internal/formatter"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/repositories"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/tasks"
	"github.com/desertthunder/showfinder/internal/view"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResultsView ViewState = iota
	FavoritesView
	DetailView
)

const maxMinRating = 10

// Options configures a [Model].
type Options struct {
	PageSize int
	Theme    repositories.Theme
	Logger   *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	state     ViewState
	prev      ViewState
	finder    *tasks.Finder
	favorites *repositories.FavoritesStore
	logger    *log.Logger
	styles    *Palette
	results   *view.View

	input      textinput.Model
	resultList list.Model
	favList    list.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap

	loading   bool
	progress  string
	status    string
	favStatus string
	toast     string

	detail        *models.Show
	detailLoading bool
	detailMsg     string

	width  int
	height int
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, finder *tasks.Finder, favorites *repositories.FavoritesStore, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	input := textinput.New()
	input.Placeholder = "Search shows (e.g., Batman)"
	input.Prompt = "🔎 "
	input.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:        ctx,
		state:      ResultsView,
		finder:     finder,
		favorites:  favorites,
		logger:     opts.Logger,
		styles:     PaletteFor(opts.Theme),
		results:    view.NewView(opts.PageSize),
		input:      input,
		resultList: newList("Results"),
		favList:    newList("Favorites"),
		spinner:    sp,
		help:       help.New(),
		keys:       newKeyMap(),
	}
	m.syncFavorites()
	return m
}

// Init loads the trending feed so the first screen is never empty.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTrending(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.resultList.SetSize(msg.Width-4, max(msg.Height-12, 4))
		m.favList.SetSize(msg.Width-4, max(msg.Height-8, 4))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.input.Focused() {
			return m.handleInputKeys(msg)
		}
		switch m.state {
		case ResultsView:
			return m.handleResultsKeys(msg)
		case FavoritesView:
			return m.handleFavoritesKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgResultsLoaded:
		res := msg.data.(tasks.Result)
		if res.Stale() || !m.finder.Current(res.Lane, res.Generation) {
			return m, nil
		}
		m.loading, m.progress = false, ""
		m.applyResults(res)
		return m, nil

	case MsgDetailsLoaded:
		res := msg.data.(tasks.Result)
		if m.state != DetailView || res.Stale() || !m.finder.Current(res.Lane, res.Generation) {
			return m, nil
		}
		m.detailLoading = false
		if res.Status == tasks.StatusOK {
			m.detail, m.detailMsg = res.Show, ""
		} else {
			m.detail, m.detailMsg = nil, res.Message
		}
		return m, nil

	case MsgProgressUpdate:
		data := msg.data.(progressData)
		if m.loading {
			m.progress = data.update.Message
		}
		return m, waitForProgress(data.source)
	}
	return m, nil
}

func (m *Model) applyResults(res tasks.Result) {
	switch res.Status {
	case tasks.StatusOK:
		if res.Query == view.TrendingQuery {
			m.results.LoadTrending(res.Shows)
		} else {
			m.results.Load(res.Query, res.Shows)
		}
		m.status = m.results.Status()
	default:
		m.results.Clear()
		m.status = res.Message
	}
	m.syncResults()
	m.resultList.Select(0)
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.input.Blur()
		m.state = ResultsView
		return m, m.search(m.input.Value())
	case "esc":
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.toast = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.resultList.SelectedItem().(showItem); ok {
			return m, m.openDetails(item.show.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if item, ok := m.resultList.SelectedItem().(showItem); ok {
			m.toggleFavorite(item.show)
		}
		return m, nil
	case key.Matches(msg, m.keys.genre):
		m.cycleGenre()
		return m, nil
	case key.Matches(msg, m.keys.sort):
		m.cycleSort()
		return m, nil
	case key.Matches(msg, m.keys.more):
		m.adjustMinRating(1)
		return m, nil
	case key.Matches(msg, m.keys.less):
		m.adjustMinRating(-1)
		return m, nil
	case key.Matches(msg, m.keys.loadMore):
		if m.results.HasMore() {
			m.results.LoadMore()
			m.status = m.results.Status()
			m.syncResults()
		}
		return m, nil
	case key.Matches(msg, m.keys.trending):
		return m, m.loadTrending()
	case key.Matches(msg, m.keys.tab):
		m.syncFavorites()
		m.state = FavoritesView
		return m, nil
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.toast = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.favList.SelectedItem().(favoriteItem); ok {
			return m, m.openDetails(item.favorite.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.remove), key.Matches(msg, m.keys.favorite):
		if item, ok := m.favList.SelectedItem().(favoriteItem); ok {
			m.removeFavorite(item.favorite.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.tab), key.Matches(msg, m.keys.back):
		m.state = ResultsView
		m.syncResults()
		return m, nil
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.favList, cmd = m.favList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.closeDetails()
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if m.detail != nil {
			m.toggleFavorite(*m.detail)
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		if m.detail != nil && m.detail.OfficialSite != "" {
			if err := shared.OpenBrowser(m.detail.OfficialSite); err != nil {
				m.logger.Warn("failed to open official site", "url", m.detail.OfficialSite, "error", err)
				m.toast = "Could not open the official site."
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case ResultsView:
		m.resultList, cmd = m.resultList.Update(msg)
	case FavoritesView:
		m.favList, cmd = m.favList.Update(msg)
	}
	return m, cmd
}

func (m *Model) search(query string) tea.Cmd {
	if strings.TrimSpace(query) != "" {
		m.loading, m.progress = true, "Searching..."
	}
	return m.runResults(func(progress chan<- tasks.ProgressUpdate) tasks.Result {
		return m.finder.Search(m.ctx, query, progress)
	})
}

func (m *Model) loadTrending() tea.Cmd {
	m.loading, m.progress = true, "Loading trending shows..."
	m.state = ResultsView
	return m.runResults(func(progress chan<- tasks.ProgressUpdate) tasks.Result {
		return m.finder.Trending(m.ctx, progress)
	})
}

// runResults runs fetch as a command and drains its progress channel until fetch returns.
func (m *Model) runResults(fetch func(chan<- tasks.ProgressUpdate) tasks.Result) tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 8)
	run := func() tea.Msg {
		defer close(progress)
		return resultsLoadedMsg(fetch(progress))
	}
	return tea.Batch(run, waitForProgress(progress))
}

func waitForProgress(source <-chan tasks.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-source
		if !ok {
			return nil
		}
		return progressUpdateMsg(update, source)
	}
}

func (m *Model) openDetails(id int) tea.Cmd {
	if m.state != DetailView {
		m.prev = m.state
	}
	m.state = DetailView
	m.detail, m.detailMsg, m.detailLoading = nil, "", true

	return func() tea.Msg {
		return detailsLoadedMsg(m.finder.Details(m.ctx, id, nil))
	}
}

func (m *Model) closeDetails() {
	m.finder.Cancel(tasks.DetailsLane)
	m.state = m.prev
	m.detail, m.detailLoading = nil, false
	m.syncResults()
	m.syncFavorites()
}

func (m *Model) toggleFavorite(show models.Show) {
	added, err := m.favorites.Toggle(show)
	switch {
	case err != nil:
		m.logger.Error("failed to toggle favorite", "id", show.ID, "error", err)
		m.toast = "Could not update favorites."
	case added:
		m.toast = "Added to favorites ⭐"
	default:
		m.toast = "Removed from favorites ❌"
	}
	m.syncResults()
	m.syncFavorites()
}

func (m *Model) removeFavorite(id int) {
	if _, err := m.favorites.Remove(id); err != nil {
		m.logger.Error("failed to remove favorite", "id", id, "error", err)
		m.toast = "Could not update favorites."
	} else {
		m.toast = "Removed from favorites ❌"
	}
	m.syncFavorites()
}

func (m *Model) cycleGenre() {
	options := append([]string{""}, m.results.Genres...)
	next := (slices.Index(options, m.results.Filter.Genre) + 1) % len(options)

	f := m.results.Filter
	f.Genre = options[next]
	m.setFilter(f)
}

func (m *Model) cycleSort() {
	next := (slices.Index(view.SortKeys, m.results.Filter.Sort) + 1) % len(view.SortKeys)

	f := m.results.Filter
	f.Sort = view.SortKeys[next]
	m.setFilter(f)
}

func (m *Model) adjustMinRating(delta float64) {
	f := m.results.Filter
	f.MinRating = min(max(f.MinRating+delta, 0), maxMinRating)
	m.setFilter(f)
}

func (m *Model) setFilter(f view.Filter) {
	m.results.SetFilter(f)
	if m.results.All != nil {
		m.status = m.results.Status()
	}
	m.syncResults()
	m.resultList.Select(0)
}

func (m *Model) syncResults() {
	favs := m.favorites.IDs()
	page := m.results.Page()
	items := make([]list.Item, len(page))
	for i, s := range page {
		items[i] = showItem{show: s, favorite: favs[s.ID]}
	}
	m.resultList.SetItems(items)
}

func (m *Model) syncFavorites() {
	favs := m.favorites.List()
	items := make([]list.Item, len(favs))
	for i, f := range favs {
		items[i] = favoriteItem{favorite: f}
	}
	m.favList.SetItems(items)
	m.favStatus = formatter.FavoritesStatus(len(favs))
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.state {
	case FavoritesView:
		return m.renderFavorites()
	case DetailView:
		return m.renderDetails()
	default:
		return m.renderResults()
	}
}

func (m *Model) renderResults() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("showfinder") + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.renderControls() + "\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " " + m.progress + "\n")
	} else {
		b.WriteString(m.styles.ok.Render(m.status) + "\n")
	}

	b.WriteString(m.resultList.View() + "\n")
	if m.results.HasMore() && !m.loading {
		b.WriteString(m.styles.help.Render("m: load more") + "\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderControls() string {
	f := m.results.Filter
	genre := f.Genre
	if genre == "" {
		genre = "All Genres"
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s",
		m.styles.label.Render("Genre:"), genre,
		m.styles.label.Render("Sort:"), f.Sort,
		m.styles.label.Render("Min rating:"), formatter.FormatRating(f.MinRating),
	)
}

func (m *Model) renderFavorites() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("showfinder • favorites") + "\n")
	b.WriteString(m.styles.ok.Render(m.favStatus) + "\n")
	if len(m.favList.Items()) > 0 {
		b.WriteString(m.favList.View() + "\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderDetails() string {
	if m.detailLoading {
		return m.styles.frame.Render(m.spinner.View() + " Loading details...")
	}
	if m.detail == nil {
		msg := m.detailMsg
		if msg == "" {
			msg = tasks.MsgDetailsFailed
		}
		return m.styles.frame.Render(m.styles.err.Render(msg)+"\n\n") + "\n" + m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	}

	s := *m.detail
	var b strings.Builder

	name := s.Name
	if m.favorites.Contains(s.ID) {
		name += " " + m.styles.accent.Render("★")
	}
	b.WriteString(m.styles.title.Render(name) + "\n")
	for _, field := range formatter.DetailFields(s) {
		b.WriteString(m.styles.label.Render(field[0]+":") + " " + field[1] + "\n")
	}

	width := max(m.width-8, 20)
	b.WriteString("\n" + lipgloss.NewStyle().Width(width).Render(formatter.CleanSummary(s.Summary)))

	keys := []key.Binding{m.keys.back, m.keys.favorite, m.keys.quit}
	if s.OfficialSite != "" {
		keys = []key.Binding{m.keys.back, m.keys.favorite, m.keys.open, m.keys.quit}
	}

	out := m.styles.frame.Render(b.String()) + "\n"
	if m.toast != "" {
		out += m.styles.warn.Render(m.toast) + "\n"
	}
	return out + m.help.ShortHelpView(keys)
}

func (m *Model) renderFooter() string {
	var b strings.Builder
	if m.toast != "" {
		b.WriteString(m.styles.warn.Render(m.toast) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
