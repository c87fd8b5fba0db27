// Package repositories implements persistence for the client's local state.
//
// State is a flat set of string key/value pairs behind the [KV] interface, stored in SQLite
// by [PreferenceRepository] or held in process by [MemoryKV]. Typed accessors sit on top:
//   - [FavoritesStore] : the favorites list, a JSON array of [models.Favorite]
//   - [ThemeStore] : the persisted color theme
//
// Reads of malformed data fall back to defaults instead of failing.
package repositories
