package seqdetect

import (
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stateforward/go-seqdetect/clock"
	"github.com/stateforward/go-seqdetect/queue"
)

// Trace is called at the start of a traced operation and returns the
// function that ends it.
type Trace func(step string, attributes ...attribute.KeyValue) func(err error)

type Match struct {
	Pattern int
	// End is the zero-based stream position of the symbol that completed
	// the match.
	End uint64
	At  time.Time
}

type Snapshot struct {
	Counts   []uint64
	States   []int
	Position uint64
}

type Option func(*options)

type options struct {
	trace   Trace
	clock   clock.Clock
	matches bool
	limit   int
}

func WithTrace(trace Trace) Option {
	return func(options *options) {
		options.trace = trace
	}
}

func WithClock(clock clock.Clock) Option {
	return func(options *options) {
		options.clock = clock
	}
}

// WithMatches records every match so it can be read back with Matches. A
// positive limit keeps only the most recent matches.
func WithMatches(maybeLimit ...int) Option {
	return func(options *options) {
		options.matches = true
		if len(maybeLimit) > 0 {
			options.limit = maybeLimit[0]
		}
	}
}

// Session drives one automaton per pattern over a shared symbol stream.
// It is not safe for concurrent use.
type Session struct {
	id       string
	patterns []string
	policy   Policy
	automata []*Automaton
	states   []int
	counts   []uint64
	position uint64
	matches  *queue.Queue[Match]
	config   options
}

// New builds a session for patterns. Either every automaton is built or
// none is and the first invalid pattern is reported as a *PatternError.
func New(patterns []string, policy Policy, opts ...Option) (*Session, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrInvalidPattern)
	}
	session := &Session{
		id:       newID(),
		patterns: append([]string(nil), patterns...),
		policy:   policy,
		automata: make([]*Automaton, len(patterns)),
		states:   make([]int, len(patterns)),
		counts:   make([]uint64, len(patterns)),
	}
	for _, option := range opts {
		option(&session.config)
	}
	var end func(error)
	if session.config.trace != nil {
		end = session.config.trace("New",
			attribute.String("session.id", session.id),
			attribute.StringSlice("session.patterns", session.patterns),
			attribute.String("session.policy", policy.String()),
		)
	}
	err := session.build()
	if end != nil {
		end(err)
	}
	if err != nil {
		return nil, err
	}
	if session.config.matches {
		session.matches = queue.New[Match](session.config.limit)
		if session.config.clock == nil {
			session.config.clock = clock.Make()
		}
	}
	return session, nil
}

func (session *Session) build() error {
	for i, pattern := range session.patterns {
		automaton, err := build(i, pattern, session.policy)
		if err != nil {
			return err
		}
		session.automata[i] = automaton
	}
	return nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (session *Session) ID() string {
	return session.id
}

func (session *Session) Patterns() []string {
	return append([]string(nil), session.patterns...)
}

func (session *Session) Policy() Policy {
	return session.policy
}

func (session *Session) Automata() []*Automaton {
	return append([]*Automaton(nil), session.automata...)
}

// Step advances every automaton by symbol. An invalid symbol leaves the
// session untouched.
func (session *Session) Step(symbol byte) error {
	return session.step(symbol, 0)
}

func (session *Session) step(symbol byte, offset int) (err error) {
	if session.config.trace != nil {
		end := session.config.trace("Step",
			attribute.String("session.id", session.id),
			attribute.String("symbol", string(rune(symbol))),
			attribute.Int64("position", int64(session.position)),
		)
		defer func() { end(err) }()
	}
	if !Alphabet.Contains(symbol) {
		return &SymbolError{Symbol: symbol, Offset: offset}
	}
	for i, automaton := range session.automata {
		next := automaton.table[session.states[i]][index(symbol)]
		session.states[i] = next
		if next == automaton.Accept() {
			session.counts[i]++
			if session.matches != nil {
				session.matches.Push(Match{Pattern: i, End: session.position, At: session.config.clock.Now()})
			}
		}
	}
	session.position++
	return nil
}

// Steps applies symbols one at a time and yields the snapshot taken after
// each. An invalid symbol is yielded as an error and ends the sequence;
// symbols before it keep their effect.
func (session *Session) Steps(symbols string) iter.Seq2[Snapshot, error] {
	return func(yield func(Snapshot, error) bool) {
		for offset := 0; offset < len(symbols); offset++ {
			if err := session.step(symbols[offset], offset); err != nil {
				yield(Snapshot{}, err)
				return
			}
			if !yield(session.Snapshot(), nil) {
				return
			}
		}
	}
}

// StepMany applies symbols in order and returns one snapshot per applied
// symbol. On an invalid symbol it returns the snapshots taken so far
// together with the error.
func (session *Session) StepMany(symbols string) ([]Snapshot, error) {
	snapshots := make([]Snapshot, 0, len(symbols))
	for snapshot, err := range session.Steps(symbols) {
		if err != nil {
			return snapshots, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func (session *Session) Snapshot() Snapshot {
	return Snapshot{
		Counts:   session.Counts(),
		States:   append([]int(nil), session.states...),
		Position: session.position,
	}
}

func (session *Session) Counts() []uint64 {
	return append([]uint64(nil), session.counts...)
}

// Matches drains the match log. It returns nil unless the session was
// created WithMatches.
func (session *Session) Matches() []Match {
	if session.matches == nil {
		return nil
	}
	return session.matches.Drain()
}

// Reset returns a new session with the same patterns, policy and options.
// The receiver is left as it was.
func (session *Session) Reset() *Session {
	if session.config.trace != nil {
		defer session.config.trace("Reset", attribute.String("session.id", session.id))(nil)
	}
	fresh := &Session{
		id:       newID(),
		patterns: session.patterns,
		policy:   session.policy,
		automata: session.automata,
		states:   make([]int, len(session.patterns)),
		counts:   make([]uint64, len(session.patterns)),
		config:   session.config,
	}
	if session.matches != nil {
		fresh.matches = queue.New[Match](session.config.limit)
	}
	return fresh
}
