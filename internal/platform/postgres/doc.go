// Package postgres provides the PostgreSQL implementation of store.DocumentStore.
// Documents live in a single JSONB table keyed by (collection, id); the schema
// is managed with goose migrations embedded in this package.
package postgres
