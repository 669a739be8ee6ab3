package itc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEventNode(t *testing.T, n int64, left, right EventTree) EventTree {
	t.Helper()
	e, err := NewEventNode(n, left, right)
	require.NoError(t, err)
	return e
}

func TestNewEventLeafRejectsNegative(t *testing.T) {
	_, err := NewEventLeaf(-1)
	require.Error(t, err)
	assert.True(t, IsNegativeLeaf(err))
}

func TestNormEventCollapsesEqualLeafChildren(t *testing.T) {
	five, _ := NewEventLeaf(5)
	node := mustEventNode(t, 0, five, five)
	assert.Equal(t, eventLeaf(5), node)
}

func TestNormEventLiftsCommonMinimum(t *testing.T) {
	two, _ := NewEventLeaf(2)
	three, _ := NewEventLeaf(3)
	// (0, 2, 3) should lift the common minimum 2 into the base:
	// (2, 0, 1).
	node := mustEventNode(t, 0, two, three)
	zero, _ := NewEventLeaf(0)
	one, _ := NewEventLeaf(1)
	want := mustEventNode(t, 2, zero, one)
	assert.Equal(t, want, node)
}

// TestJoinEventsWorkedExample mirrors S5: join_ev((0,(1,1,0),0),(0,(1,0,1),0))
// == (0,2,0).
func TestJoinEventsWorkedExample(t *testing.T) {
	one, _ := NewEventLeaf(1)
	zero, _ := NewEventLeaf(0)

	left := mustEventNode(t, 0,
		mustEventNode(t, 1, one, zero),
		zero)
	right := mustEventNode(t, 0,
		mustEventNode(t, 1, zero, one),
		zero)

	got := JoinEvents(left, right)
	want := mustEventNode(t, 0, eventLeaf(2), zero)
	assert.Equal(t, want, got)
}

func TestJoinEventsIsCommutative(t *testing.T) {
	one, _ := NewEventLeaf(1)
	two, _ := NewEventLeaf(2)
	a := mustEventNode(t, 0, one, two)
	b := mustEventNode(t, 1, two, one)

	assert.Equal(t, JoinEvents(a, b), JoinEvents(b, a))
}

func TestJoinEventsIsAssociative(t *testing.T) {
	one, _ := NewEventLeaf(1)
	two, _ := NewEventLeaf(2)
	three, _ := NewEventLeaf(3)
	a := mustEventNode(t, 0, one, two)
	b := mustEventNode(t, 1, two, one)
	c := three

	left := JoinEvents(JoinEvents(a, b), c)
	right := JoinEvents(a, JoinEvents(b, c))
	assert.Equal(t, left, right)
}

func TestJoinEventsIsIdempotent(t *testing.T) {
	one, _ := NewEventLeaf(1)
	two, _ := NewEventLeaf(2)
	a := mustEventNode(t, 0, one, two)
	assert.Equal(t, a, JoinEvents(a, a))
}

func TestJoinEventsIsLeastUpperBound(t *testing.T) {
	one, _ := NewEventLeaf(1)
	two, _ := NewEventLeaf(2)
	a := mustEventNode(t, 0, one, two)
	b := mustEventNode(t, 1, two, one)

	j := JoinEvents(a, b)
	assert.True(t, Leq(a, j))
	assert.True(t, Leq(b, j))
}

func TestLeqReflexiveAndAntisymmetric(t *testing.T) {
	one, _ := NewEventLeaf(1)
	two, _ := NewEventLeaf(2)
	a := mustEventNode(t, 0, one, two)

	assert.True(t, Leq(a, a))

	b := mustEventNode(t, 1, one, two)
	assert.True(t, Leq(a, b))
	assert.False(t, Leq(b, a))
}

func TestLeqAcrossDifferentShapes(t *testing.T) {
	// A leaf of 3 is <= a node whose root is 4 ((3,1,2) normalizes to
	// (4,0,1)), since no point reachable under a node can have an
	// absolute value below its root. Every point of the node is above 3,
	// so the comparison the other way does not hold: the leaf does not
	// dominate the node.
	leaf, _ := NewEventLeaf(3)
	two, _ := NewEventLeaf(2)
	one, _ := NewEventLeaf(1)
	node := mustEventNode(t, 3, one, two) // absolute values 4 and 5

	assert.True(t, Leq(leaf, node))
	assert.False(t, Leq(node, leaf))
}

func TestMinVMaxV(t *testing.T) {
	one, _ := NewEventLeaf(1)
	three, _ := NewEventLeaf(3)
	node := mustEventNode(t, 1, one, three)
	assert.Equal(t, int64(2), minV(node))
	assert.Equal(t, int64(4), maxV(node))
}

// TestFuzzJoinEventsIsCommutative, TestFuzzJoinEventsIsAssociative,
// TestFuzzJoinEventsIsIdempotent, TestFuzzJoinEventsIsLeastUpperBound,
// TestFuzzLeqReflexive, and TestFuzzEventRoundTripsThroughTextAndBinary
// live in event_fuzz_test.go (package itc_test), since they depend on
// internal/randgen, which itself imports this package.
