// Package store defines the document persistence contract shared by the
// PostgreSQL and in-memory adapters, together with the sentinel errors those
// adapters return. Business code depends only on DocumentStore.
package store
