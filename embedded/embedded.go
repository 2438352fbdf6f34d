package embedded

// Automaton is the read-only view of a single pattern's transition table.
type Automaton interface {
	Pattern() string
	Accept() int
	States() int
	Next(state int, symbol byte) int
	StateKind(state int) uint64
	TransitionKind(state int, symbol byte) uint64
}

type Stepper interface {
	Step(symbol byte) error
}

type Detector interface {
	Stepper
	ID() string
	Patterns() []string
	Counts() []uint64
}
