// Package gateway is the HTTP client for the smart-home backend. It carries
// no business logic: each method maps one REST endpoint, decodes the JSON
// response into domain types, and folds every failure mode (transport error,
// non-2xx status, malformed body) into a single *Error so callers handle
// exactly one failure kind.
//
// The base URL and request timeout come from configuration; nothing is
// hardcoded. Every call takes a context and respects its cancellation.
package gateway
