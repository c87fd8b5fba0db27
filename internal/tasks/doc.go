// Package tasks orchestrates catalog requests on behalf of the CLI and TUI.
//
// # Request lanes
//
// A [Finder] issues requests on two lanes: [SearchLane] (title search and trending, which
// share the results area) and [DetailsLane]. Each lane keeps a monotonic generation counter.
// Starting a request bumps the counter and cancels the lane's previous in-flight request, so
// only the latest response of a lane is ever applied. Superseded responses come back with
// [ErrStale] and callers drop them.
//
// # Outcomes
//
// Every [Result] carries a [Status] and the user-facing message for it:
//   - [StatusOK] : records were fetched
//   - [StatusEmpty] : the request succeeded with nothing to show
//   - [StatusFailed] : the request failed; there is no retry and the user re-triggers it
//
// # Progress Reporting
//
// Long operations such as [Finder.RefreshFavorites] report [ProgressUpdate] values through an
// optional channel. Sends never block; a full channel drops the update.
package tasks
