// Package library serves reconciled user libraries and owns the library state write path.
//
// State rows (user_games) and log rows (game_logs) are loaded concurrently and merged by
// core/reconcile. Updates change one field at a time; a state row left without flags or
// status is deleted, and an update that would create an empty row is skipped.
//
// User ids in paths accept the canonical UUID or its short id.
package library
