// Package metrics declares the Prometheus collectors of the service.
//
// Collectors are registered on the default registry at package initialisation and exposed by
// the start command under /metrics. They cover cache efficiency, catalog upstream traffic,
// the upstream circuit breaker and the background cache backfill.
package metrics
