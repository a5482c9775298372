// Package idgen produces the opaque identifiers assigned to stored links.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator returns a fresh identifier on every call.
// Implementations must be safe for concurrent use.
type Generator interface {
	NewID() (string, error)
}

// Func adapts an ordinary function to a Generator.
type Func func() (string, error)

func (f Func) NewID() (string, error) { return f() }

type v7Gen struct {
	retries int
}

// NewV7 returns a Generator of time-ordered UUID v7 strings. Values from
// one process sort in generation order, which the stores rely on to break
// ties between links sharing a display order.
//
// retries is the number of extra attempts made when the entropy source
// fails; negative values are treated as zero.
func NewV7(retries int) Generator {
	if retries < 0 {
		retries = 0
	}
	return &v7Gen{retries: retries}
}

func (g *v7Gen) NewID() (string, error) {
	var last error
	for range g.retries + 1 {
		id, err := uuid.NewV7()
		if err == nil {
			return id.String(), nil
		}
		last = err
	}
	return "", fmt.Errorf("uuid v7 generation failed after %d attempts: %w", g.retries+1, last)
}
