package overlay

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator generates unique run ids.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run ids, so a run
// listing sorted by id follows creation order.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns sequential deterministic ids for tests.
type FixedGenerator struct {
	mu sync.Mutex
	n  int
}

// Generate returns "run-1", "run-2", ... in order.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("run-%d", g.n)
}
