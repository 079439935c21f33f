// Package apierror classifies errors crossing the HTTP boundary.
//
// Validation errors map to 400, catalog upstream failures to 502, missing resources to 404
// and everything else to 500. Cache store failures never reach this package: the cache
// absorbs them and degrades to a miss.
package apierror
