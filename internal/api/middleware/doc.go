// Package middleware contains the HTTP middleware mounted on the router:
// tracing, optional bearer authentication, per-client rate limiting and
// schema validation of request bodies and path parameters.
package middleware
