// Package service contains the library's use cases: creating, listing,
// reading, updating and deleting users, books and borrow records.
//
// Services sit between the HTTP handlers in internal/api and a
// store.DocumentStore. They map stored documents to domain entities, apply
// partial updates as read-merge-write, and enforce the domain invariants that
// request validation cannot see.
//
// Lookup semantics:
//   - GetByID and Update return (nil, nil) when the document does not exist,
//     so callers can answer with an empty envelope instead of an error
//   - Delete returns an error wrapping the entity's store.Err*NotFound sentinel
//     and never forwards a delete for a missing document
//
// Every operation opens an OpenTelemetry span on the tracer named
// TracerName and wraps unexpected failures in a *ServiceError.
package service
