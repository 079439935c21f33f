// Package games resolves catalog game records through the TTL cache.
//
// The batch resolver deduplicates requested slugs, serves cached records from one bulk
// lookup, fetches the rest from IGDB in chunks of 50 issued concurrently, normalises them and
// hands the fresh records to a Backfiller, which writes them to the cache with a 24 hour TTL
// without delaying the response.
//
// By default a failed chunk fails the whole batch (502). In partial mode, selected per
// request or by catalog.partial_results, the resolved games are returned together with the
// failed chunks.
//
// # Endpoints
//
//   - POST   /games/batch   {"slugs": [...], "partial": false}
//   - GET    /games/:slug
//   - DELETE /games/cache
package games
