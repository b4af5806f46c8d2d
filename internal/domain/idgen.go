package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces collision-improbable identifiers for new log entries.
// It is injected rather than called ambiently so tests can substitute a
// deterministic sequence.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns the production generator backed by random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator yields "prefix-1", "prefix-2", ... and exists for tests.
type SequenceGenerator struct {
	Prefix string
	next   int
}

func (g *SequenceGenerator) NewID() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.Prefix, g.next)
}
