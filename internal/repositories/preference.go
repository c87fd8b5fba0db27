package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Preference is one persisted key/value row.
type Preference struct {
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PreferenceRepository implements [KV] over the preferences table.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new [PreferenceRepository] with the given database connection
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get retrieves the value stored under key
func (r *PreferenceRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key
func (r *PreferenceRepository) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("validation failed: preference key is required")
	}

	now := time.Now()
	query := `
		INSERT INTO preferences (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, now, now); err != nil {
		return fmt.Errorf("failed to store preference %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *PreferenceRepository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	return nil
}

// List retrieves every stored preference ordered by key
func (r *PreferenceRepository) List() ([]Preference, error) {
	rows, err := r.db.Query(`SELECT key, value, created_at, updated_at FROM preferences ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.Key, &p.Value, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return prefs, nil
}
