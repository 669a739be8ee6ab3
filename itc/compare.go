package itc

// Leq reports whether a's causal history happens-before-or-equal b's
// (§6 "leq(other) on their event trees"). This is the partial order
// ITC stamps are compared under.
func (a Stamp) Leq(b Stamp) bool {
	return Leq(a.History, b.History)
}

// Equiv reports whether a and b carry the same causal history: a
// derived comparison, Leq(a,b) && Leq(b,a) (§6).
func (a Stamp) Equiv(b Stamp) bool {
	return a.Leq(b) && b.Leq(a)
}

// Concurrent reports whether neither a nor b's causal history
// happens-before the other's: a derived comparison, !Leq(a,b) &&
// !Leq(b,a) (§6). Concurrent updates are exactly the inconsistent
// updates this library exists to detect.
func (a Stamp) Concurrent(b Stamp) bool {
	return !a.Leq(b) && !b.Leq(a)
}

// Dominates reports whether a strictly happens-after b: a derived
// comparison, Leq(b,a) && !Leq(a,b) (§6).
func (a Stamp) Dominates(b Stamp) bool {
	return b.Leq(a) && !a.Leq(b)
}
