// Package models defines the catalog entities exchanged with the show catalog and persisted locally.
//
// The package contains two categories of types:
//
// 1. Catalog records: the wire shape of the TVmaze API
//   - [Show] : one catalog entry describing a television program
//   - [SearchResult] : the {score, show} wrapper returned by title search
//
// 2. Persisted projections: reduced copies that outlive any result set
//   - [Favorite] : a show chosen by the user, kept displayable even if it leaves search results
//
// Missing values on [Show] are modeled with pointers or empty strings; helpers such as
// [Show.Year] and [Show.RatingValue] turn them into sentinels for sorting.
package models
