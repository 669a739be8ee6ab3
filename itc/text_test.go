package itc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIDCanonicalForms(t *testing.T) {
	assert.Equal(t, "0", FormatID(IDZero))
	assert.Equal(t, "1", FormatID(IDOne))
	assert.Equal(t, "(1,0)", FormatID(NewIDNode(IDOne, IDZero)))
	assert.Equal(t, "((1,0),1)", FormatID(NewIDNode(NewIDNode(IDOne, IDZero), IDOne)))
}

func TestFormatEventCanonicalForms(t *testing.T) {
	zero, _ := NewEventLeaf(0)
	assert.Equal(t, "0", FormatEvent(zero))

	one, _ := NewEventLeaf(1)
	node, err := NewEventNode(0, one, zero)
	require.NoError(t, err)
	assert.Equal(t, "(0,1,0)", FormatEvent(node))
}

func TestStampString(t *testing.T) {
	assert.Equal(t, "(1,0)", Seed().String())
}

func TestParseIDRoundTrips(t *testing.T) {
	cases := []IdTree{
		IDZero,
		IDOne,
		NewIDNode(IDOne, IDZero),
		NewIDNode(NewIDNode(IDZero, IDOne), IDOne),
	}
	for _, want := range cases {
		got, err := ParseID(FormatID(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseEventRoundTrips(t *testing.T) {
	one, _ := NewEventLeaf(1)
	three, _ := NewEventLeaf(3)
	node, err := NewEventNode(2, one, three)
	require.NoError(t, err)

	cases := []EventTree{ZeroEvent, node}
	for _, want := range cases {
		got, err := ParseEvent(FormatEvent(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

// TestParseStampRoundTrip exercises §8 Property 11: parse(print(x)) == x
// for a normal-form stamp.
func TestParseStampRoundTrip(t *testing.T) {
	s := Seed().Event()
	a, b := s.Fork()
	joined, err := Join(a, b)
	require.NoError(t, err)

	got, err := ParseStamp(joined.String())
	require.NoError(t, err)
	assert.Equal(t, joined, got)
}

func TestParseIDRejectsMalformedInput(t *testing.T) {
	cases := []string{"", "2", "(1,0", "(1 0)", "(1,0))"}
	for _, input := range cases {
		_, err := ParseID(input)
		require.Error(t, err, "input %q should fail to parse", input)
		assert.True(t, IsMalformed(err))
	}
}

func TestParseEventRejectsMalformedInput(t *testing.T) {
	cases := []string{"", "-1", "(1,2,3", "(a,0,0)"}
	for _, input := range cases {
		_, err := ParseEvent(input)
		require.Error(t, err, "input %q should fail to parse", input)
		assert.True(t, IsMalformed(err))
	}
}

func TestParseStampRejectsTrailingInput(t *testing.T) {
	_, err := ParseStamp("(1,0)garbage")
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}
