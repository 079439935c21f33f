// Package reconcile merges the two per-user library sources into one view per game.
//
// A user's library is written in two places: a compact state record per game (flags and
// status, rewritten in place) and an append-only log of events (optionally rated). Reconcile
// folds both into an Aggregate keyed by slug:
//
//   - flags are OR-merged across every contributing row and never reset;
//   - the state status wins, otherwise the first non-empty event status in fold order;
//   - AvgRating is the rounded mean of event ratings, nil when there are none;
//   - LatestAt is the newest timestamp among state and events.
//
// The fold is pure and synchronous. It never drops or invents slugs; pruning empty state
// records is the write path's job (see StateRecord.Empty).
//
// Summarize and Select derive the per-shelf counters and filtered listings shown on profiles.
package reconcile
