// Package middleware groups the HTTP middleware used by the server:
// rayid for request tracing and auth for API key protection.
package middleware
