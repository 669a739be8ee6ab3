package itc

// EventTree is the event domain of an Interval Tree Clock: a binary
// tree of non-negative integers with optional children, representing a
// causal history with per-region inflation counts (§3).
//
// EventTree is a sealed sum type with exactly two variants: eventLeaf (a
// plain ℕ₀ count) and eventNode (a base count plus two children). Both
// variants are comparable, so structural equality (==) on normal-form
// EventTrees is semantic equality.
type EventTree interface {
	eventTree()
}

// eventLeaf is the leaf variant: n means "every point in this interval
// has been inflated at least n times".
type eventLeaf int64

func (eventLeaf) eventTree() {}

// eventNode is the interior-node variant: n base ticks for the whole
// interval, plus relative ticks in each half.
type eventNode struct {
	n           int64
	left, right EventTree
}

func (eventNode) eventTree() {}

// ZeroEvent is the "0" leaf: no ticks anywhere. This is the event tree
// of the seed stamp.
var ZeroEvent EventTree = eventLeaf(0)

// NewEventLeaf constructs a leaf EventTree for n. Returns a
// SemanticError (ErrNegativeLeaf) if n is negative (§7).
func NewEventLeaf(n int64) (EventTree, error) {
	if n < 0 {
		return nil, newSemanticError(ErrNegativeLeaf, "leaf value %d is negative", n)
	}
	return eventLeaf(n), nil
}

// newEvent constructs an interior node and immediately normalizes it.
func newEvent(n int64, left, right EventTree) EventTree {
	return normEvent(eventNode{n: n, left: left, right: right})
}

// NewEventNode constructs a normalized EventTree interior node (§4.4:
// "Every constructor of ... EventTree internal nodes goes through
// norm_ev"). Returns a SemanticError (ErrNegativeLeaf) if n is
// negative.
func NewEventNode(n int64, left, right EventTree) (EventTree, error) {
	if n < 0 {
		return nil, newSemanticError(ErrNegativeLeaf, "node base count %d is negative", n)
	}
	return newEvent(n, left, right), nil
}

// minV is min_v from §3: the minimum absolute value reachable from e.
func minV(e EventTree) int64 {
	switch v := e.(type) {
	case eventLeaf:
		return int64(v)
	case eventNode:
		return v.n
	default:
		panic("itc: EventTree has unknown dynamic type")
	}
}

// maxV is max_v from §3: the maximum absolute value reachable from e.
func maxV(e EventTree) int64 {
	switch v := e.(type) {
	case eventLeaf:
		return int64(v)
	case eventNode:
		l := maxV(v.left)
		r := maxV(v.right)
		if l < r {
			return v.n + r
		}
		return v.n + l
	default:
		panic("itc: EventTree has unknown dynamic type")
	}
}

// lift is lift from §4.2: adds m to the root of e.
func lift(e EventTree, m int64) EventTree {
	if m == 0 {
		return e
	}
	switch v := e.(type) {
	case eventLeaf:
		return eventLeaf(int64(v) + m)
	case eventNode:
		return eventNode{n: v.n + m, left: v.left, right: v.right}
	default:
		panic("itc: EventTree has unknown dynamic type")
	}
}

// sink is sink from §4.2: subtracts m from the root of e. Precondition:
// m <= minV(e) along the affected path — callers within this package
// always establish that precondition before calling sink.
func sink(e EventTree, m int64) EventTree {
	return lift(e, -m)
}

// normEvent is norm_ev from §4.2: collapses a node whose children are
// equal leaves into a single leaf, and otherwise lifts the children's
// common minimum into the node's own base count.
func normEvent(e EventTree) EventTree {
	node, ok := e.(eventNode)
	if !ok {
		return e
	}

	if lLeaf, lok := node.left.(eventLeaf); lok {
		if rLeaf, rok := node.right.(eventLeaf); rok && lLeaf == rLeaf {
			return eventLeaf(node.n + int64(lLeaf))
		}
	}

	m := minV(node.left)
	if r := minV(node.right); r < m {
		m = r
	}
	if m == 0 {
		return node
	}
	return eventNode{
		n:     node.n + m,
		left:  sink(node.left, m),
		right: sink(node.right, m),
	}
}

// JoinEvents computes the least EventTree greater than or equal to both
// a and b (§4.2): the pointwise maximum over the interval, expressed on
// trees.
func JoinEvents(a, b EventTree) EventTree {
	aLeaf, aIsLeaf := a.(eventLeaf)
	bLeaf, bIsLeaf := b.(eventLeaf)

	switch {
	case aIsLeaf && bIsLeaf:
		if aLeaf > bLeaf {
			return aLeaf
		}
		return bLeaf
	case aIsLeaf && !bIsLeaf:
		return joinNodes(eventNode{n: int64(aLeaf), left: ZeroEvent, right: ZeroEvent}, b.(eventNode))
	case !aIsLeaf && bIsLeaf:
		return joinNodes(a.(eventNode), eventNode{n: int64(bLeaf), left: ZeroEvent, right: ZeroEvent})
	default:
		return joinNodes(a.(eventNode), b.(eventNode))
	}
}

// joinNodes implements the node/node case of join from §4.2, including
// the swap-to-keep-n1-smaller normalization the paper's definition
// relies on.
func joinNodes(a, b eventNode) EventTree {
	if a.n > b.n {
		a, b = b, a
	}
	d := b.n - a.n
	left := JoinEvents(a.left, lift(b.left, d))
	right := JoinEvents(a.right, lift(b.right, d))
	return normEvent(eventNode{n: a.n, left: left, right: right})
}

// Leq is the happens-before relation on EventTrees (§4.2). It is
// well-defined across structurally different trees by always comparing
// fully-lifted (absolute-valued) subtrees.
func Leq(a, b EventTree) bool {
	return leqAbs(a, 0, b, 0)
}

// leqAbs compares a (with an accumulated absolute offset aOff already
// applied at its ancestors) against b (similarly offset), per the
// lifted-comparison form in §4.2.
func leqAbs(a EventTree, aOff int64, b EventTree, bOff int64) bool {
	aLeaf, aIsLeaf := a.(eventLeaf)
	bLeaf, bIsLeaf := b.(eventLeaf)

	switch {
	case aIsLeaf && bIsLeaf:
		return aOff+int64(aLeaf) <= bOff+int64(bLeaf)
	case aIsLeaf && !bIsLeaf:
		// A leaf is <= a node iff it is <= the node's root: every
		// point under the node has absolute value >= the node's root.
		bn := b.(eventNode)
		return aOff+int64(aLeaf) <= bOff+bn.n
	case !aIsLeaf && bIsLeaf:
		an := a.(eventNode)
		n1 := aOff + an.n
		n2 := bOff + int64(bLeaf)
		return n1 <= n2 &&
			leqAbs(an.left, n1, eventLeaf(0), n2) &&
			leqAbs(an.right, n1, eventLeaf(0), n2)
	default:
		an := a.(eventNode)
		bn := b.(eventNode)
		n1 := aOff + an.n
		n2 := bOff + bn.n
		return n1 <= n2 &&
			leqAbs(an.left, n1, bn.left, n2) &&
			leqAbs(an.right, n1, bn.right, n2)
	}
}
