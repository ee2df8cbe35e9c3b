// Package domain contains the core library entities (users, books and borrow
// records), the patch types used for partial updates, and domain-level
// validation. It has no knowledge of HTTP or persistence.
package domain
