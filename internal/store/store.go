// Package store contains the PostgreSQL persistence layer. Each domain gets
// one store type over a shared pgx pool; services depend on the narrow
// interfaces they declare, not on these concrete types.
package store

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a query by id matches no row.
var ErrNotFound = errors.New("not found")

// newID allocates a time-ordered UUIDv7 primary key.
func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
