package randgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oising/itc4net/itc"
)

func TestDisjointIDPairNeverOverlaps(t *testing.T) {
	src := New(1)
	for i := 0; i < 50; i++ {
		a, b := src.DisjointIDPair(4)
		_, err := itc.Sum(a, b)
		require.NoError(t, err, "iteration %d: generated pair overlaps", i)
	}
}

func TestEventRoundTripsThroughBinaryCodec(t *testing.T) {
	src := New(2)
	for i := 0; i < 50; i++ {
		e := src.Event(4, 20)
		got, err := itc.DecodeEvent(itc.EncodeEvent(e))
		require.NoError(t, err, "iteration %d", i)
		assert.Equal(t, e, got)
	}
}

func TestResetReproducesSequence(t *testing.T) {
	src := New(42)
	firstRun := make([]string, 10)
	for i := range firstRun {
		firstRun[i] = itc.FormatID(src.ID(3))
	}

	src.Reset(42)
	secondRun := make([]string, 10)
	for i := range secondRun {
		secondRun[i] = itc.FormatID(src.ID(3))
	}

	assert.Equal(t, firstRun, secondRun)
}

func TestSeededStampTreeProducesDisjointLeaves(t *testing.T) {
	src := New(7)
	stamps := src.SeededStampTree(6)
	require.Len(t, stamps, 6)

	var id itc.IdTree = itc.IDZero
	for i, s := range stamps {
		next, err := itc.Sum(id, s.ID)
		require.NoError(t, err, "stamp %d overlaps with an earlier one", i)
		id = next
	}
	assert.Equal(t, itc.IDOne, id)
}
