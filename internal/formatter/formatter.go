// package formatter renders favorites and show records for terminal output and file export
// (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/natefinch/atomic"
)

// NotAvailable is shown in place of missing values.
const NotAvailable = "N/A"

// Export formats accepted by [ExportFavorites].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// FormatRating renders a rating as the catalog reports it, or [NotAvailable].
func FormatRating(r float64) string {
	if r == models.MissingValue {
		return NotAvailable
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatYear renders a premiere year, or [NotAvailable].
func FormatYear(y int) string {
	if y == models.MissingValue {
		return NotAvailable
	}
	return strconv.Itoa(y)
}

// FavoritesStatus is the summary line above the favorites list.
func FavoritesStatus(n int) string {
	if n == 0 {
		return "No favorites yet. Search for a show and mark it with f ⭐"
	}
	return fmt.Sprintf("Saved favorites: %d", n)
}

// ExportFavoritesCSV converts favorites to CSV with columns: ID, Name, Year, Rating, Image
func ExportFavoritesCSV(favs []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Year", "Rating", "Image"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, f := range favs {
		record := []string{
			strconv.Itoa(f.ID),
			f.Name,
			yearCell(f.Year()),
			ratingCell(f.RatingValue()),
			f.Image,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportFavoritesMarkdown converts favorites to a Markdown document with poster thumbnails
func ExportFavoritesMarkdown(favs []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Favorites\n\n")
	fmt.Fprintf(&buf, "**Shows**: %d\n\n", len(favs))

	for i, f := range favs {
		fmt.Fprintf(&buf, "%d. **%s** (%s) ⭐ %s\n", i+1, f.Name, FormatYear(f.Year()), FormatRating(f.RatingValue()))
		if f.Image != "" {
			fmt.Fprintf(&buf, "   ![%s](%s)\n", f.Name, f.Image)
		}
	}

	return buf.Bytes(), nil
}

// ExportFavoritesText converts favorites to plain text
func ExportFavoritesText(favs []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(FavoritesStatus(len(favs)) + "\n\n")
	for i, f := range favs {
		fmt.Fprintf(&buf, "%d. %s • %s • Rating: %s\n", i+1, f.Name, FormatYear(f.Year()), FormatRating(f.RatingValue()))
	}

	return buf.Bytes(), nil
}

// ExportFavorites renders favorites in the named format.
func ExportFavorites(favs []models.Favorite, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportFavoritesCSV(favs)
	case FormatMarkdown, "markdown":
		return ExportFavoritesMarkdown(favs)
	case FormatText, "text":
		return ExportFavoritesText(favs)
	case FormatJSON, "":
		if favs == nil {
			favs = []models.Favorite{}
		}
		return shared.MarshalJSON(favs, true)
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q (use %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// DefaultExportPath returns favorites.{ext} for the format.
func DefaultExportPath(format string) string {
	switch strings.ToLower(format) {
	case "markdown":
		format = FormatMarkdown
	case "text":
		format = FormatText
	case "":
		format = FormatJSON
	}
	return "favorites." + strings.ToLower(format)
}

// WriteFavoritesExport renders favorites and writes them to path.
//
// Defaults to favorites.{ext} in the working directory.
func WriteFavoritesExport(favs []models.Favorite, format, path string) (string, error) {
	data, err := ExportFavorites(favs, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = DefaultExportPath(format)
	}
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile atomically replaces the file at path with data, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := shared.EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func yearCell(y int) string {
	if y == models.MissingValue {
		return ""
	}
	return strconv.Itoa(y)
}

func ratingCell(r float64) string {
	if r == models.MissingValue {
		return ""
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
