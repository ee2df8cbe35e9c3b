// Package memory provides an in-process implementation of store.DocumentStore.
// It is used when the server runs with the memory backend and by service tests.
// Documents are kept JSON-encoded, so callers never share state with the store
// and values read back have the same shape as those from the PostgreSQL adapter.
package memory
