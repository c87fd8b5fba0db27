package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/showfinder/internal/models"
)

const noSummary = "No summary available."

// CleanSummary strips markup from a catalog summary and collapses whitespace.
//
// Block boundaries become spaces so adjacent paragraphs do not run together.
func CleanSummary(html string) string {
	if strings.TrimSpace(html) == "" {
		return noSummary
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return noSummary
	}

	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, li, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return noSummary
	}
	return text
}

// Schedule renders the airing slot as "Monday, Tuesday • 20:00", or [NotAvailable].
func Schedule(s models.Schedule) string {
	if len(s.Days) == 0 {
		return NotAvailable
	}
	t := s.Time
	if t == "" {
		t = "Time " + NotAvailable
	}
	return strings.Join(s.Days, ", ") + " • " + t
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// DetailFields returns the labeled detail rows of a show in display order.
func DetailFields(s models.Show) [][2]string {
	genres := NotAvailable
	if len(s.Genres) > 0 {
		genres = strings.Join(s.Genres, ", ")
	}

	return [][2]string{
		{"Rating", "⭐ " + FormatRating(s.RatingValue())},
		{"Genres", genres},
		{"Status", orNA(s.Status)},
		{"Premiered", orNA(s.Premiered)},
		{"Ended", orNA(s.Ended)},
		{"Schedule", Schedule(s.Schedule)},
		{"Language", orNA(s.Language)},
		{"Network", orNA(s.NetworkName())},
		{"Official site", orNA(s.OfficialSite)},
	}
}

// Details renders the full detail block for a show as plain text.
func Details(s models.Show) string {
	var b strings.Builder

	b.WriteString(s.Name + "\n")
	b.WriteString(strings.Repeat("─", max(len([]rune(s.Name)), 8)) + "\n")
	for _, field := range DetailFields(s) {
		fmt.Fprintf(&b, "%-14s %s\n", field[0]+":", field[1])
	}
	if poster := s.LargePoster(); poster != "" {
		fmt.Fprintf(&b, "%-14s %s\n", "Poster:", poster)
	}
	b.WriteString("\n" + CleanSummary(s.Summary) + "\n")

	return b.String()
}

// ResultsTable renders shows as a bordered table, starring favorites.
func ResultsTable(shows []models.Show, favorites map[int]bool) string {
	rows := make([][]string, 0, len(shows))
	for _, s := range shows {
		name := s.Name
		if favorites[s.ID] {
			name += " ★"
		}
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			name,
			FormatYear(s.Year()),
			FormatRating(s.RatingValue()),
			strings.Join(s.Genres, ", "),
		})
	}

	return newTable("ID", "Name", "Year", "Rating", "Genres").Rows(rows...).String()
}

// FavoritesTable renders the favorites list as a bordered table.
func FavoritesTable(favs []models.Favorite) string {
	rows := make([][]string, 0, len(favs))
	for _, f := range favs {
		rows = append(rows, []string{
			strconv.Itoa(f.ID),
			f.Name + " ★",
			FormatYear(f.Year()),
			FormatRating(f.RatingValue()),
		})
	}

	return newTable("ID", "Name", "Year", "Rating").Rows(rows...).String()
}

func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
