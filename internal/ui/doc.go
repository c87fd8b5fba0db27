// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [ResultsView] : search box, filter controls and the revealed page of results
//  2. [FavoritesView] : the persisted favorites list
//  3. [DetailView] : full record of one show, opened over either list
//
// The [Model] implements bubbletea's Init/Update/View pattern. Catalog requests run as commands
// through a [tasks.Finder]; their results arrive as [Msg] values and are applied in Update only,
// after the Finder confirms they are still the latest of their lane. Progress updates flow through
// a per-request channel that is drained until the request finishes.
//
// Keys: / to search, enter for details, f to favorite, g/s to cycle genre and sort, +/- for the
// minimum rating, m to load more, t for trending, tab to switch lists, q to quit.
package ui
