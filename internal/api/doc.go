// Package api implements the resilient HTTP client for the Dubstep Discovery charts API.
//
// # Client
//
// [Client] performs requests for named logical operations against a configured
// base URL. Each call resolves the operation through a typed endpoint table,
// attaches a bearer token for authenticated operations, applies a per-attempt
// timeout and retries transient failures (timeouts, transport errors, 5xx
// responses) under an injected [RetryPolicy] with exponential backoff.
// 4xx responses and undecodable bodies are terminal and never retried.
//
// # Failure taxonomy
//
// Every failure surfaces as a [*ClientError] whose Type is one of:
//   - [ErrorTypeConfiguration] : unknown operation or bad path arguments
//   - [ErrorTypeAuth] : authenticated operation attempted without a token
//   - [ErrorTypeHTTP] : non-2xx response (terminal when 4xx)
//   - [ErrorTypeTimeout] : per-attempt deadline exceeded
//   - [ErrorTypeNetwork] : transport-level failure
//   - [ErrorTypeDecode] : response body is not valid JSON
//   - [ErrorTypeRetryExhausted] : all attempts failed; wraps the last error
//
// # Caching
//
// [CachedClient] decorates a Client for chart-loading call sites: GET responses
// are stored under a key derived from the operation and its parameters and
// served without a network call on subsequent requests. TTL is optional; a zero
// TTL keeps entries for the life of the process with no invalidation on
// mutation.
//
// # Concurrency
//
// The client is safe for concurrent use. [FetchAll] fans out several requests
// (e.g. the chart panels of a dashboard) and joins them, failing the aggregate
// if any single request fails.
package api
