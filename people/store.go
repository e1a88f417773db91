/*
store.go - Persistence contract for personnel records

PURPOSE:
  Defines the interface between domain logic and the database. The event
  evaluator treats ListAll as its only query primitive: filtering happens
  in memory, which is fine at personnel-roster scale.

LIFECYCLE:
  Stores are explicitly constructed and passed to every component that
  needs one (dependency injection), with an explicit Close. There is no
  process-wide singleton.

IMPLEMENTATIONS:
  - store/sqlite:     Production SQLite
  - people/store:     In-memory, for tests and dev

SEE ALSO:
  - person.go: The record and its partial-update semantics
  - errors.go: Errors produced by these operations
*/
package people

import "context"

// Store persists personnel records.
type Store interface {
	// Add validates and persists a new record, assigning its ID.
	// Fails with *ValidationError or ErrDuplicateEmail; nothing partial is
	// ever written.
	Add(ctx context.Context, p Person) (Person, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Person, error)

	// GetByEmail returns the record with the given email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (Person, error)

	// Update merges a partial update into the record. Fails with
	// ErrNotFound, *ValidationError, or ErrDuplicateEmail.
	Update(ctx context.Context, id string, upd Update) error

	// Delete removes the record with the given id, or ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ListAll returns every record in insertion order.
	ListAll(ctx context.Context) ([]Person, error)

	// Close releases the underlying resources.
	Close() error
}
