package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/showfinder/internal/shared"
)

// Theme is the persisted color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeDark
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: theme must be light or dark, got %q", shared.ErrInvalidArgument, s)
	}
}

// ThemeStore is the typed accessor for the persisted theme.
type ThemeStore struct {
	kv KV
}

func NewThemeStore(kv KV) *ThemeStore {
	return &ThemeStore{kv: kv}
}

// Get returns the stored theme, or [DefaultTheme] when unset or unrecognized.
func (s *ThemeStore) Get() Theme {
	raw, ok, err := s.kv.Get(ThemeKey)
	if err != nil || !ok {
		return DefaultTheme
	}
	if t, err := ParseTheme(raw); err == nil {
		return t
	}
	return DefaultTheme
}

func (s *ThemeStore) Set(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.kv.Set(ThemeKey, string(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
