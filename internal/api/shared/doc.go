// Package shared contains the HTTP helpers used by handlers and middleware:
// JSON and envelope responses, error responses carrying a trace id, and
// request decoding.
package shared
