package itc

// Stamp is an (IdTree, EventTree) pair: a participant's identity claim
// paired with its causal history (§3).
//
// The zero value of Stamp is not meaningful; use Seed() to obtain the
// canonical starting point.
type Stamp struct {
	ID      IdTree
	History EventTree
}

// Seed returns the canonical seed stamp (1, 0): the sole owner of the
// entire identity interval, with no recorded events.
func Seed() Stamp {
	return Stamp{ID: IDOne, History: ZeroEvent}
}

// IsAnonymous reports whether s owns no identity region (ID == 0).
// Anonymous stamps cannot inflate their event tree (§3).
func (s Stamp) IsAnonymous() bool {
	return s.ID == IDZero
}

// Fork splits s into two stamps with disjoint identities and identical
// causal histories (§4.3). Sum(id(s1), id(s2)) reconstructs s.ID.
func (s Stamp) Fork() (Stamp, Stamp) {
	i1, i2 := Split(s.ID)
	return Stamp{ID: i1, History: s.History}, Stamp{ID: i2, History: s.History}
}

// Fork3 forks s into three stamps with pairwise-disjoint identities and
// identical causal histories, by forking twice (§6).
func (s Stamp) Fork3() (Stamp, Stamp, Stamp) {
	a, rest := s.Fork()
	b, c := rest.Fork()
	return a, b, c
}

// Fork4 forks s into four stamps with pairwise-disjoint identities and
// identical causal histories, by forking three times (§6, exercised by
// S3).
func (s Stamp) Fork4() (Stamp, Stamp, Stamp, Stamp) {
	ab, cd := s.Fork()
	a, b := ab.Fork()
	c, d := cd.Fork()
	return a, b, c, d
}

// Peek returns an anonymous copy of s: same causal history, no identity
// claim. Anonymous stamps are used to stamp outgoing messages or
// records without transferring ownership of any identity region (§4.3).
func (s Stamp) Peek() Stamp {
	return Stamp{ID: IDZero, History: s.History}
}

// Event inflates the causal history in the region owned by s.ID (§4.3).
// Event is a no-op on an anonymous stamp, since it owns no region to
// inflate.
func (s Stamp) Event() Stamp {
	if s.IsAnonymous() {
		return s
	}
	filled := fill(s.ID, s.History)
	if filled != s.History {
		return Stamp{ID: s.ID, History: filled}
	}
	grown, _ := grow(s.ID, s.History)
	return Stamp{ID: s.ID, History: grown}
}

// fill is the cheap-inflation branch of Event (§4.3): it advances the
// event tree by exploiting regions where the ID tree already fully owns
// an interval (a "1" leaf), which never requires growing the tree.
func fill(i IdTree, e EventTree) EventTree {
	if i == IDZero {
		return e
	}
	if i == IDOne {
		return eventLeaf(maxV(e))
	}
	if _, isLeaf := e.(eventLeaf); isLeaf {
		// fill(i, n) where n is a leaf and i != 0,1: nothing to exploit,
		// the leaf already represents the interval uniformly.
		return e
	}

	node := e.(eventNode)
	idn, ok := i.(idNode)
	if !ok {
		panic("itc: IdTree has unknown dynamic type")
	}

	switch {
	case idn.left == IDOne:
		// fill((1, r), (n, l', r')) = norm(n, max(maxV(l'), minV(r'')), r'')
		rPrime := fill(idn.right, node.right)
		left := maxV(node.left)
		if m := minV(rPrime); m > left {
			left = m
		}
		return newEvent(node.n, eventLeaf(left), rPrime)
	case idn.right == IDOne:
		// fill((l, 1), (n, l', r')) = norm(n, l'', max(maxV(r'), minV(l'')))
		lPrime := fill(idn.left, node.left)
		right := maxV(node.right)
		if m := minV(lPrime); m > right {
			right = m
		}
		return newEvent(node.n, lPrime, eventLeaf(right))
	default:
		return newEvent(node.n, fill(idn.left, node.left), fill(idn.right, node.right))
	}
}

// growDepthPenalty is the "large constant" §4.3 calls for when grow must
// recurse into a leaf by first expanding it into a trivial node — it
// only needs to strictly dominate the cost of growing into an existing
// node, never chosen to win a tie-break.
const growDepthPenalty = 1000

// grow is the cost-minimizing fallback of Event (§4.3), used when fill
// cannot reduce because the ID strictly subsets its region. It returns
// the inflated tree and a cost metric; ties are broken in favor of the
// left child, per the pseudocode itself ("breaking ties by preferring
// the left").
func grow(i IdTree, e EventTree) (EventTree, int64) {
	if i == IDOne {
		if leaf, ok := e.(eventLeaf); ok {
			// grow(1, n) = (n+1, 0) — cost 0.
			return eventLeaf(int64(leaf) + 1), 0
		}
	}

	if leaf, ok := e.(eventLeaf); ok {
		// grow(i, n) where n is a leaf: recurse on (n, 0, 0) and
		// penalize the depth growth this introduces.
		grown, cost := grow(i, eventNode{n: int64(leaf), left: ZeroEvent, right: ZeroEvent})
		return grown, cost + growDepthPenalty
	}

	node := e.(eventNode)
	idn, ok := i.(idNode)
	if !ok {
		panic("itc: IdTree has unknown dynamic type")
	}

	switch {
	case idn.left == IDZero:
		rGrown, cost := grow(idn.right, node.right)
		return newEvent(node.n, node.left, rGrown), cost + 1
	case idn.right == IDZero:
		lGrown, cost := grow(idn.left, node.left)
		return newEvent(node.n, lGrown, node.right), cost + 1
	default:
		lGrown, lCost := grow(idn.left, node.left)
		rGrown, rCost := grow(idn.right, node.right)
		if lCost <= rCost {
			return newEvent(node.n, lGrown, node.right), lCost + 1
		}
		return newEvent(node.n, node.left, rGrown), rCost + 1
	}
}

// Join merges two stamps' identities and histories (§4.3). It is used
// both to retire an identity back into a peer (when both operands own
// disjoint regions) and to merge anonymous history (when either operand
// is anonymous).
func Join(a, b Stamp) (Stamp, error) {
	id, err := Sum(a.ID, b.ID)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{ID: id, History: JoinEvents(a.History, b.History)}, nil
}

// Send inflates s and returns the new local stamp alongside an
// anonymous message stamp to ship with an outgoing message (§4.3).
func (s Stamp) Send() (Stamp, Stamp) {
	s2 := s.Event()
	return s2, s2.Peek()
}

// Receive merges the local stamp s with an incoming anonymous message
// stamp m and inflates the result (§4.3).
func (s Stamp) Receive(m Stamp) (Stamp, error) {
	joined, err := Join(s, m)
	if err != nil {
		return Stamp{}, err
	}
	return joined.Event(), nil
}
