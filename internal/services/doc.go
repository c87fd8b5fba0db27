// Package services defines the [Catalog] interface for remote show catalogs and implements it for TVmaze.
//
// # Catalog Interface
//
// A catalog exposes three read-only operations: title search, lookup by identifier and
// paging through the full index. The trending feed is built from one index page by the
// tasks package, since TVmaze has no trending endpoint.
//
// # TVmaze Implementation
//
// [TVMazeService] talks to the public, unauthenticated TVmaze API:
//
//	GET /search/shows?q=<title>  → [{score, show}]
//	GET /shows/{id}              → show
//	GET /shows?page=<n>          → [show]
//
// Requests are paced client-side with a token bucket (golang.org/x/time/rate) because the
// API enforces a per-IP call budget. Detail lookups may be served from an expirable LRU.
// There is no retry and no backoff: a failed request fails once and the caller decides.
//
// # Raw Access
//
// [APIService] performs raw GET requests against the same base URL for debugging.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingArgument] : empty search query
//   - [shared.ErrInvalidArgument] : non-positive show id or negative page
//   - [shared.ErrShowNotFound] : GET /shows/{id} answered 404
//   - [shared.ErrAPIRequest] : transport failure, non-2xx status or undecodable body
package services
