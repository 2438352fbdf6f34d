package seqdetect_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateforward/go-seqdetect"
	"github.com/stateforward/go-seqdetect/kinds"
)

// reference derives each transition by brute force: the longest suffix of
// pattern[:state]+symbol that is also a prefix of pattern.
func reference(pattern string, policy seqdetect.Policy) [][2]int {
	length := len(pattern)
	table := make([][2]int, length+1)
	for state := 0; state <= length; state++ {
		for i, symbol := range []byte{'0', '1'} {
			candidate := pattern[:state] + string(symbol)
			for size := min(len(candidate), length); size >= 0; size-- {
				if candidate[len(candidate)-size:] == pattern[:size] {
					table[state][i] = size
					break
				}
			}
		}
	}
	if policy == seqdetect.NonOverlapping {
		table[length] = table[0]
	}
	return table
}

func patterns(length int) []string {
	all := []string{}
	for n := 0; n < 1<<length; n++ {
		all = append(all, fmt.Sprintf("%0*b", length, n))
	}
	return all
}

func TestBuildMatchesReference(t *testing.T) {
	for _, policy := range []seqdetect.Policy{seqdetect.Overlapping, seqdetect.NonOverlapping} {
		for length := 1; length <= 8; length++ {
			for _, pattern := range patterns(length) {
				automaton, err := seqdetect.Build(pattern, policy)
				require.NoError(t, err)
				require.Equal(t, reference(pattern, policy), automaton.Table(), "pattern %q policy %s", pattern, policy)
			}
		}
	}
}

func TestBuildTotalTransitions(t *testing.T) {
	for _, pattern := range []string{"0", "1", "101", "111", "0110", "10010011"} {
		automaton, err := seqdetect.Build(pattern, seqdetect.Overlapping)
		require.NoError(t, err)
		assert.Equal(t, len(pattern), automaton.Accept())
		assert.Equal(t, len(pattern)+1, automaton.States())
		for state := 0; state <= automaton.Accept(); state++ {
			for _, symbol := range []byte{'0', '1'} {
				next := automaton.Next(state, symbol)
				assert.GreaterOrEqual(t, next, 0)
				assert.LessOrEqual(t, next, automaton.Accept())
			}
		}
	}
}

func TestBuildNonOverlappingCopiesInitialRow(t *testing.T) {
	automaton, err := seqdetect.Build("1011", seqdetect.NonOverlapping)
	require.NoError(t, err)
	table := automaton.Table()
	assert.Equal(t, table[0], table[automaton.Accept()])
	assert.NotEqual(t, table[1], table[automaton.Accept()])

	overlapping, err := seqdetect.Build("1011", seqdetect.Overlapping)
	require.NoError(t, err)
	// the border of 1011 is 1, so a trailing 1 can start the next match
	assert.Equal(t, [2]int{2, 1}, overlapping.Table()[4])
	assert.Equal(t, [2]int{0, 1}, table[4])
}

func TestBuildInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"", "102", "abc", " 1"} {
		_, err := seqdetect.Build(pattern, seqdetect.Overlapping)
		require.Error(t, err, "pattern %q", pattern)
		assert.True(t, errors.Is(err, seqdetect.ErrInvalidPattern))
		var patternErr *seqdetect.PatternError
		require.True(t, errors.As(err, &patternErr))
		assert.Equal(t, -1, patternErr.Index)
		assert.Equal(t, pattern, patternErr.Pattern)
	}
	_, err := seqdetect.Build("10", seqdetect.Policy(7))
	assert.ErrorIs(t, err, seqdetect.ErrInvalidPattern)
}

func TestNextPanicsOutOfRange(t *testing.T) {
	automaton, err := seqdetect.Build("10", seqdetect.Overlapping)
	require.NoError(t, err)
	assert.Panics(t, func() { automaton.Next(3, '0') })
	assert.Panics(t, func() { automaton.Next(0, '2') })
}

func TestKinds(t *testing.T) {
	automaton, err := seqdetect.Build("101", seqdetect.Overlapping)
	require.NoError(t, err)
	assert.Equal(t, kinds.Initial, automaton.StateKind(0))
	assert.Equal(t, kinds.Partial, automaton.StateKind(2))
	assert.Equal(t, kinds.Accept, automaton.StateKind(3))
	assert.Equal(t, kinds.Null, automaton.StateKind(4))

	assert.Equal(t, kinds.Advance, automaton.TransitionKind(0, '1'))
	assert.Equal(t, kinds.Restart, automaton.TransitionKind(0, '0'))
	assert.Equal(t, kinds.Fallback, automaton.TransitionKind(1, '1'))
	assert.Equal(t, kinds.Overlap, automaton.TransitionKind(3, '0'))
	assert.Equal(t, kinds.Null, automaton.TransitionKind(1, 'x'))

	rewinding, err := seqdetect.Build("101", seqdetect.NonOverlapping)
	require.NoError(t, err)
	assert.Equal(t, kinds.Rewind, rewinding.TransitionKind(3, '1'))
	assert.True(t, kinds.IsKind(rewinding.TransitionKind(3, '0'), kinds.Restart))
}

func TestPolicy(t *testing.T) {
	for name, want := range map[string]seqdetect.Policy{
		"":                seqdetect.Overlapping,
		"1":               seqdetect.Overlapping,
		"Overlapping":     seqdetect.Overlapping,
		"2":               seqdetect.NonOverlapping,
		"non-overlap":     seqdetect.NonOverlapping,
		"non-overlapping": seqdetect.NonOverlapping,
	} {
		got, err := seqdetect.ParsePolicy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := seqdetect.ParsePolicy("3")
	assert.Error(t, err)

	var policy seqdetect.Policy
	require.NoError(t, policy.UnmarshalText([]byte("non-overlapping")))
	assert.Equal(t, seqdetect.NonOverlapping, policy)
	text, err := policy.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "non-overlapping", string(text))
	assert.Equal(t, "Policy(9)", seqdetect.Policy(9).String())
}
