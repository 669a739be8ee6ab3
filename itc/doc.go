// Package itc implements Interval Tree Clocks, a causality-tracking
// mechanism for distributed systems with a dynamic number of
// participants.
//
// A Stamp pairs an IdTree (an identity claim over the [0,1] interval)
// with an EventTree (a compressed causal history). The kernel exposes
// five operations — Fork, Event, Join, and the composites Send/Receive
// built on top of Peek — plus normalization procedures that keep every
// tree in canonical minimal form.
//
// DESIGN CONSTRAINTS:
//
// Pure values, no mutation. Every kernel operation returns a new Stamp;
// inputs are never observed to change. There is no shared mutable state,
// no suspension point, and no I/O anywhere in this package — integration
// with threads, transport, or persistence is the caller's concern.
//
// Disjoint-ID invariant. IDs produced by any sequence of kernel
// operations starting from Seed() never overlap. Sum panics-free failure
// mode is an error return, not a panic: SemanticError with
// ErrOverlappingIDs, reachable only when a caller feeds the kernel IDs
// it did not itself obtain from Fork.
//
// Canonical normal form. Every IdTree/EventTree returned by this package
// is minimal: normID/normEvent run on every internal node constructed by
// Sum, Split, JoinEvents, and Event. Two normal-form trees are
// structurally equal iff semantically equal.
package itc
