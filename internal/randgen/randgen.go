// Package randgen generates random normal-form IdTree, EventTree, and
// Stamp values for property-based tests against the itc package.
//
// Unlike a plain math/rand.New call scattered through test files, Source
// is resettable to a known seed, so the same generated sequence can be
// reproduced across test runs for failure triage.
package randgen

import (
	"math/rand"

	"github.com/oising/itc4net/itc"
)

// Source produces a reproducible sequence of random itc values from a
// seed. Source is not safe for concurrent use; give each goroutine its
// own Source.
type Source struct {
	rng *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Reset reseeds s, so a subsequent sequence of calls reproduces the
// sequence generated by a fresh Source with the same seed.
func (s *Source) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// ID generates a random normal-form IdTree of at most maxDepth levels.
func (s *Source) ID(maxDepth int) itc.IdTree {
	if maxDepth <= 0 || s.rng.Intn(3) == 0 {
		if s.rng.Intn(2) == 0 {
			return itc.IDZero
		}
		return itc.IDOne
	}
	left := s.ID(maxDepth - 1)
	right := s.ID(maxDepth - 1)
	return itc.NewIDNode(left, right)
}

// DisjointIDPair generates two IdTrees guaranteed disjoint (their Sum
// never fails) by splitting a randomly generated parent, mirroring how
// the kernel's Fork always produces disjoint children.
func (s *Source) DisjointIDPair(maxDepth int) (itc.IdTree, itc.IdTree) {
	parent := s.ID(maxDepth)
	return itc.Split(parent)
}

// EventLeafValue generates a random non-negative leaf value bounded by
// maxLeaf.
func (s *Source) EventLeafValue(maxLeaf int64) int64 {
	if maxLeaf <= 0 {
		return 0
	}
	return s.rng.Int63n(maxLeaf + 1)
}

// Event generates a random normal-form EventTree of at most maxDepth
// levels, with leaf and base-count values bounded by maxLeaf.
func (s *Source) Event(maxDepth int, maxLeaf int64) itc.EventTree {
	if maxDepth <= 0 || s.rng.Intn(3) == 0 {
		leaf, err := itc.NewEventLeaf(s.EventLeafValue(maxLeaf))
		if err != nil {
			// EventLeafValue never returns a negative value.
			panic(err)
		}
		return leaf
	}
	n := s.EventLeafValue(maxLeaf)
	left := s.Event(maxDepth-1, maxLeaf)
	right := s.Event(maxDepth-1, maxLeaf)
	node, err := itc.NewEventNode(n, left, right)
	if err != nil {
		panic(err)
	}
	return node
}

// Stamp generates a random Stamp by pairing a random IdTree with a
// random EventTree. The pair is not derived from a real Fork/Event
// sequence, so it should only be used to exercise operations that
// accept arbitrary well-formed stamps (parsing, encoding, Leq) rather
// than ones relying on Fork's disjointness or Event's monotonicity
// history.
func (s *Source) Stamp(maxDepth int, maxLeaf int64) itc.Stamp {
	return itc.Stamp{ID: s.ID(maxDepth), History: s.Event(maxDepth, maxLeaf)}
}

// SeededStampTree generates n stamps that all descend from a single
// Seed() via real Fork/Event operations, exercising the kernel
// instead of constructing values directly. It returns the stamps in
// the order they were produced; callers interested in the causal
// history should use the kernel operations on the returned stamps
// rather than reinspecting their internals.
func (s *Source) SeededStampTree(n int) []itc.Stamp {
	if n <= 0 {
		return nil
	}
	pool := []itc.Stamp{itc.Seed()}
	for len(pool) < n {
		idx := s.rng.Intn(len(pool))
		parent := pool[idx]
		a, b := parent.Fork()
		if s.rng.Intn(2) == 0 {
			a = a.Event()
		} else {
			b = b.Event()
		}
		pool[idx] = a
		pool = append(pool, b)
	}
	return pool
}
