// Package saavn implements the catalog collaborator: searching JioSaavn
// for tracks and fetching per-track details including stream URLs.
//
// The package handles two API calls:
//
//  1. Search: full-text song search, returning loose partial records
//  2. Lookup: per-song details with download variants and extended metadata
//
// # Boundary conversion
//
// The API's response shapes are loose: albums appear as plain strings or
// objects, years and durations as strings or numbers, and search results
// omit fields that the details endpoint includes. All of that is absorbed
// here: responses are converted into the fixed model.MatchCandidate and
// model.TrackDetails records immediately on receipt, so the rest of the
// pipeline never sees the wire format.
//
// # Rate limiting and retries
//
// Requests pass through a token-bucket rate limiter, and transient
// network failures are retried a bounded number of times. A terminal
// search failure surfaces as an empty candidate list; per-item matching
// policy (NoMatch handling) belongs to the matcher, not to this client.
//
// # Basic usage
//
//	client := saavn.NewClient(httpClient, saavn.Options{RatePerSecond: 5, MaxRetries: 2}, logger)
//	candidates, err := client.Search(ctx, "Shape of You")
//	details, err := client.Lookup(ctx, candidates[0].CatalogID)
package saavn
