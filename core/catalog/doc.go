// Package catalog is the client for the upstream game catalog (IGDB).
//
// IGDB takes Apicalypse query bodies POSTed to one endpoint per resource and authenticates
// with a Twitch application token. The package provides:
//
//   - TokenProvider / CredentialsProvider: client-credentials tokens, reused until a minute
//     before expiry.
//   - Client: rate limited (4 req/s by default) and circuit broken requests returning raw
//     JSON records. Non-2xx responses surface as *StatusError.
//   - BuildGamesQuery: the games projection used by the batch resolver.
//
// Client errors (4xx other than 429) do not count against the circuit breaker.
package catalog
