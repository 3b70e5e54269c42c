package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDGenerator issues run ids "<prefix>-0001", "<prefix>-0002", ...
//
// Stores built with it produce identical run ids on every test run, which
// keeps archived output comparable across runs.
//
// Thread-safety: all methods are safe for concurrent use.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequenceIDGenerator creates a generator. An empty prefix becomes "run".
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next id. Implements store.IDGenerator.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq)
}

// Issued returns how many ids have been generated.
func (g *SequenceIDGenerator) Issued() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. The next Generate returns "<prefix>-0001".
func (g *SequenceIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
