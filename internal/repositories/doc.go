// package repositories provides SQLite-backed persistence for the API client.
//
// TokenRepository keeps the auth token across CLI invocations so a login in
// one process is visible to the next. CacheRepository persists API responses
// so chart panels render instantly on repeat runs.
package repositories
