// Package db holds the row types and SQL for the links table. Two drivers
// implement the same query set: PostgreSQL through pgx and an embedded
// SQLite database through modernc.org/sqlite.
package db

import (
	"embed"
	"errors"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// ErrNoRows is returned by UpdateLink when no row has the given id.
var ErrNoRows = errors.New("db: no rows in result set")

// Link is one row of the links table. Timestamps are Unix milliseconds.
type Link struct {
	ID          string
	Name        string
	URL         string
	Description string
	Tag         *string
	SortOrder   int32
	CreatedAt   int64
	UpdatedAt   int64
}

type CreateLinkParams struct {
	ID          string
	Name        string
	URL         string
	Description string
	Tag         *string
	SortOrder   int32
	CreatedAt   int64
}

// UpdateLinkParams describes a partial update. Nil pointers leave the
// column unchanged. Tag is only written when SetTag is true, so a nil Tag
// with SetTag clears it.
type UpdateLinkParams struct {
	ID          string
	Name        *string
	URL         *string
	Description *string
	SetTag      bool
	Tag         *string
	SortOrder   *int32
	// UpdatedAt is the caller's clock. The stored value becomes
	// max(UpdatedAt, previous+1) so it always moves forward.
	UpdatedAt int64
}

func schema(name string) string {
	b, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		panic(err)
	}
	return string(b)
}
