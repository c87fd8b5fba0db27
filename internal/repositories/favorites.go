package repositories

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showfinder/internal/models"
	"github.com/desertthunder/showfinder/internal/shared"
)

// FavoritesStore is the typed accessor for the persisted favorites list.
//
// Every mutation reads the current list, modifies it and writes it back whole.
type FavoritesStore struct {
	kv     KV
	logger *log.Logger
}

// NewFavoritesStore creates a [FavoritesStore] over kv.
func NewFavoritesStore(kv KV, logger *log.Logger) *FavoritesStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &FavoritesStore{kv: kv, logger: logger}
}

// List returns the persisted favorites in insertion order.
//
// A missing key, undecodable JSON or a non-array value all read as an empty list. Entries that
// fail validation are skipped and repeated IDs keep their first occurrence.
func (s *FavoritesStore) List() []models.Favorite {
	raw, ok, err := s.kv.Get(FavoritesKey)
	if err != nil {
		s.logger.Warn("failed to read favorites", "error", err)
		return []models.Favorite{}
	}
	if !ok || raw == "" {
		return []models.Favorite{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Debug("ignoring malformed favorites", "error", err)
		return []models.Favorite{}
	}

	favs := make([]models.Favorite, 0, len(entries))
	for _, entry := range entries {
		var fav models.Favorite
		if err := json.Unmarshal(entry, &fav); err != nil {
			s.logger.Debug("skipping undecodable favorite", "error", err)
			continue
		}
		if err := fav.Validate(); err != nil {
			s.logger.Debug("skipping invalid favorite", "error", err)
			continue
		}
		favs = append(favs, fav)
	}
	return dedupe(favs)
}

// Contains reports whether a show ID is in the favorites list.
func (s *FavoritesStore) Contains(id int) bool {
	return slices.ContainsFunc(s.List(), func(f models.Favorite) bool { return f.ID == id })
}

// IDs returns the set of favorited show IDs.
func (s *FavoritesStore) IDs() map[int]bool {
	favs := s.List()
	ids := make(map[int]bool, len(favs))
	for _, f := range favs {
		ids[f.ID] = true
	}
	return ids
}

// Toggle removes the show if it is a favorite, otherwise appends its projection.
//
// The returned bool is true when the show was added.
func (s *FavoritesStore) Toggle(show models.Show) (bool, error) {
	favs := s.List()
	if i := indexOf(favs, show.ID); i >= 0 {
		if err := s.Save(slices.Delete(favs, i, i+1)); err != nil {
			return false, err
		}
		s.logger.Debug("favorite removed", "id", show.ID)
		return false, nil
	}

	fav := models.NewFavorite(show)
	if err := fav.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", shared.ErrInvalidFavorite, err)
	}
	if err := s.Save(append(favs, fav)); err != nil {
		return false, err
	}
	s.logger.Debug("favorite added", "id", show.ID, "name", show.Name)
	return true, nil
}

// Remove deletes a favorite by ID. The returned bool reports whether it was present.
func (s *FavoritesStore) Remove(id int) (bool, error) {
	favs := s.List()
	i := indexOf(favs, id)
	if i < 0 {
		return false, nil
	}
	if err := s.Save(slices.Delete(favs, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

// Save replaces the persisted list. Invalid entries are rejected and duplicates collapsed.
func (s *FavoritesStore) Save(favs []models.Favorite) error {
	for _, f := range favs {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrInvalidFavorite, err)
		}
	}

	data, err := json.Marshal(dedupe(favs))
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.kv.Set(FavoritesKey, string(data)); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func indexOf(favs []models.Favorite, id int) int {
	return slices.IndexFunc(favs, func(f models.Favorite) bool { return f.ID == id })
}

func dedupe(favs []models.Favorite) []models.Favorite {
	seen := make(map[int]bool, len(favs))
	out := make([]models.Favorite, 0, len(favs))
	for _, f := range favs {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out
}
