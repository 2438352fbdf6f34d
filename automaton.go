package seqdetect

import (
	"fmt"

	"github.com/stateforward/go-seqdetect/kinds"
)

// Automaton is the DFA recognising one pattern. States run from 0 (nothing
// matched) to Accept(), and the accept state has outgoing transitions like
// any other so the automaton never halts.
type Automaton struct {
	pattern string
	policy  Policy
	table   [][2]int
}

// Build returns the automaton for pattern under policy.
//
// The transition out of state s on symbol b is the length of the longest
// suffix of pattern[:s]+b that is also a prefix of pattern. It is computed
// from the KMP failure function: matching symbols advance, anything else
// falls back to the transition of the longest proper border. The accept
// state uses the border of the whole pattern, which is what lets an
// Overlapping automaton pick up the next match mid-pattern. NonOverlapping
// instead gives the accept state the transitions of state 0.
func Build(pattern string, policy Policy) (*Automaton, error) {
	return build(-1, pattern, policy)
}

func build(at int, pattern string, policy Policy) (*Automaton, error) {
	if reason := validate(pattern); reason != "" {
		return nil, &PatternError{Index: at, Pattern: pattern, Reason: reason}
	}
	if !policy.valid() {
		return nil, &PatternError{Index: at, Pattern: pattern, Reason: fmt.Sprintf("unknown policy %d", uint8(policy))}
	}
	length := len(pattern)
	failure := borders(pattern)
	table := make([][2]int, length+1)
	table[0][index(pattern[0])] = 1
	for state := 1; state <= length; state++ {
		fallback := failure[state-1]
		for symbol := range 2 {
			if state < length && index(pattern[state]) == symbol {
				table[state][symbol] = state + 1
			} else {
				table[state][symbol] = table[fallback][symbol]
			}
		}
	}
	switch policy {
	case Overlapping:
		// the accept row already follows the pattern's border
	case NonOverlapping:
		table[length] = table[0]
	}
	return &Automaton{pattern: pattern, policy: policy, table: table}, nil
}

// borders returns, for each prefix pattern[:i+1], the length of its longest
// proper border.
func borders(pattern string) []int {
	failure := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = failure[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		failure[i] = k
	}
	return failure
}

func (automaton *Automaton) Pattern() string {
	return automaton.pattern
}

func (automaton *Automaton) Policy() Policy {
	return automaton.policy
}

// Len is the pattern length, which is also the accept state.
func (automaton *Automaton) Len() int {
	return len(automaton.pattern)
}

func (automaton *Automaton) Accept() int {
	return len(automaton.pattern)
}

// States is the number of states, Len()+1.
func (automaton *Automaton) States() int {
	return len(automaton.table)
}

// Next returns the successor of state on symbol. Both arguments must be in
// range; Session validates symbols before calling it.
func (automaton *Automaton) Next(state int, symbol byte) int {
	if state < 0 || state >= len(automaton.table) {
		panic(fmt.Errorf("state %d out of range for pattern %q", state, automaton.pattern))
	}
	if !Alphabet.Contains(symbol) {
		panic(fmt.Errorf("symbol %q is not in the alphabet", symbol))
	}
	return automaton.table[state][index(symbol)]
}

// Table returns a copy of the transition table indexed by state then by
// symbol value (0 for '0', 1 for '1').
func (automaton *Automaton) Table() [][2]int {
	table := make([][2]int, len(automaton.table))
	copy(table, automaton.table)
	return table
}

func (automaton *Automaton) StateKind(state int) uint64 {
	switch {
	case state < 0 || state >= len(automaton.table):
		return kinds.Null
	case state == 0:
		return kinds.Initial
	case state == automaton.Accept():
		return kinds.Accept
	}
	return kinds.Partial
}

func (automaton *Automaton) TransitionKind(state int, symbol byte) uint64 {
	if automaton.StateKind(state) == kinds.Null || !Alphabet.Contains(symbol) {
		return kinds.Null
	}
	next := automaton.table[state][index(symbol)]
	if state == automaton.Accept() {
		if automaton.policy == NonOverlapping {
			return kinds.Rewind
		}
		return kinds.Overlap
	}
	switch {
	case next == state+1:
		return kinds.Advance
	case next == 0:
		return kinds.Restart
	}
	return kinds.Fallback
}
