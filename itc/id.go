package itc

// IdTree is the identity domain of an Interval Tree Clock: a binary tree
// with leaves in {0,1} denoting an interval partition of [0,1] (§3).
//
// IdTree is a sealed sum type with exactly two variants: idLeaf (a {0,1}
// leaf) and idNode (a (left, right) split). Both variants are
// comparable, so structural equality (==) on normal-form IdTrees is
// semantic equality (§9 "Equality").
type IdTree interface {
	idTree()
}

// idLeaf is the leaf variant: false is the "0" leaf (claims nothing),
// true is the "1" leaf (claims the whole interval).
type idLeaf bool

func (idLeaf) idTree() {}

// idNode is the interior-node variant: a split of the current interval
// into a left half and a right half.
type idNode struct {
	left, right IdTree
}

func (idNode) idTree() {}

// IDZero is the "0" leaf: claims no part of the identity interval.
var IDZero IdTree = idLeaf(false)

// IDOne is the "1" leaf: claims the whole identity interval. This is
// the identity of the seed stamp.
var IDOne IdTree = idLeaf(true)

// newID constructs an interior node and immediately normalizes it, so
// every IdTree built via this constructor is automatically in normal
// form (§4.4).
func newID(left, right IdTree) IdTree {
	return normID(left, right)
}

// NewIDNode constructs a normalized IdTree interior node from arbitrary
// (not necessarily kernel-derived) children (§4.4: "Every constructor
// of IdTree ... internal nodes goes through norm_id").
func NewIDNode(left, right IdTree) IdTree {
	return newID(left, right)
}

// normID is norm_id from §4.1: (0,0) collapses to 0, (1,1) collapses to
// 1, otherwise the node is already minimal.
func normID(left, right IdTree) IdTree {
	if left == IDZero && right == IDZero {
		return IDZero
	}
	if left == IDOne && right == IDOne {
		return IDOne
	}
	return idNode{left: left, right: right}
}

// Sum takes the pointwise disjunction of two IdTrees and normalizes the
// result (§4.1). Sum fails with a SemanticError (ErrOverlappingIDs) if
// the operands both claim the same point of the interval — callers must
// never call Sum on IDs that share a region; the kernel's Join always
// does so safely because Fork only ever produces disjoint children.
func Sum(a, b IdTree) (IdTree, error) {
	switch {
	case a == IDZero:
		return b, nil
	case b == IDZero:
		return a, nil
	case a == IDOne && b == IDOne:
		return nil, newSemanticError(ErrOverlappingIDs,
			"both operands claim the entire interval")
	case a == IDOne || b == IDOne:
		// One side is 1 and the other is a strict node: overlap exists
		// somewhere inside the node's subtree by the disjoint-ID
		// invariant's contrapositive — a normal-form node can only
		// coexist disjointly with 0.
		return nil, newSemanticError(ErrOverlappingIDs,
			"one operand claims the entire interval while the other claims part of it")
	}

	an, aIsNode := a.(idNode)
	bn, bIsNode := b.(idNode)
	if !aIsNode || !bIsNode {
		// Both must be leaves at this point (IDZero/IDOne already
		// handled above), which exhausts the IdTree grammar.
		return nil, newSemanticError(ErrOverlappingIDs, "malformed IdTree operands")
	}

	left, err := Sum(an.left, bn.left)
	if err != nil {
		return nil, err
	}
	right, err := Sum(an.right, bn.right)
	if err != nil {
		return nil, err
	}
	return normID(left, right), nil
}

// Split partitions i into two disjoint IdTrees whose Sum reconstructs i
// (§4.1). i must already be in normal form.
func Split(i IdTree) (IdTree, IdTree) {
	switch v := i.(type) {
	case idLeaf:
		if !bool(v) {
			// split(0) = (0, 0)
			return IDZero, IDZero
		}
		// split(1) = ((1,0), (0,1))
		return newID(IDOne, IDZero), newID(IDZero, IDOne)
	case idNode:
		lIsZero := v.left == IDZero
		rIsZero := v.right == IDZero
		switch {
		case rIsZero && !lIsZero:
			// split(l,0) = ((l0,0),(l1,0))
			l0, l1 := Split(v.left)
			return newID(l0, IDZero), newID(l1, IDZero)
		case lIsZero && !rIsZero:
			// split(0,r) = ((0,r0),(0,r1))
			r0, r1 := Split(v.right)
			return newID(IDZero, r0), newID(IDZero, r1)
		default:
			// split(l,r) = ((l,0),(0,r)) when both non-zero (and the
			// both-zero case is unreachable on normal-form input,
			// since (0,0) normalizes to the leaf 0).
			return newID(v.left, IDZero), newID(IDZero, v.right)
		}
	default:
		panic("itc: IdTree has unknown dynamic type")
	}
}
