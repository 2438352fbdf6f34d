package seqdetect

import (
	"fmt"
	"strings"

	"github.com/stateforward/go-seqdetect/pkg/set"
)

const (
	Zero byte = '0'
	One  byte = '1'
)

var Alphabet = set.New(Zero, One)

func index(symbol byte) int {
	return int(symbol - Zero)
}

type Policy uint8

const (
	// Overlapping lets a match reuse the tail of the previous one.
	Overlapping Policy = iota
	// NonOverlapping restarts from the empty prefix after every match.
	NonOverlapping
)

func (policy Policy) String() string {
	switch policy {
	case Overlapping:
		return "overlapping"
	case NonOverlapping:
		return "non-overlapping"
	}
	return fmt.Sprintf("Policy(%d)", uint8(policy))
}

func (policy Policy) valid() bool {
	return policy == Overlapping || policy == NonOverlapping
}

// ParsePolicy accepts the policy names, their short forms and the numeric
// menu choices "1" and "2".
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "1", "overlap", "overlapping":
		return Overlapping, nil
	case "2", "non-overlap", "non-overlapping", "nonoverlapping":
		return NonOverlapping, nil
	}
	return Overlapping, fmt.Errorf("unknown policy %q", name)
}

func (policy Policy) MarshalText() ([]byte, error) {
	if !policy.valid() {
		return nil, fmt.Errorf("unknown policy %d", uint8(policy))
	}
	return []byte(policy.String()), nil
}

func (policy *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*policy = parsed
	return nil
}
