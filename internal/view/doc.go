// Package view derives the rendered subset of a fetched result list.
//
// The pipeline is filter → sort → reveal:
//
//   - [Apply] filters by exact genre and minimum rating, then orders by a [SortKey].
//     It always returns a new slice and never mutates its input.
//   - [View] holds the fetched list, the derived list and the visible-count cursor.
//     [View.Page] is always a prefix of [View.Results].
//
// Missing ratings and years sort as [models.MissingValue]: first in ascending
// orders and last in descending ones. Names compare with English collation.
package view
