// Package plantuml renders pattern automata as PlantUML state diagrams.
package plantuml

import (
	"fmt"
	"io"
	"strings"

	"github.com/stateforward/go-seqdetect/embedded"
	"github.com/stateforward/go-seqdetect/kinds"
)

var symbols = []byte{'0', '1'}

func stateId(prefix string, state int) string {
	return fmt.Sprintf("%s_s%d", prefix, state)
}

func generateState(builder *strings.Builder, depth int, prefix string, automaton embedded.Automaton, state int) {
	indent := strings.Repeat(" ", depth*2)
	id := stateId(prefix, state)
	tag := ""
	if kinds.IsKind(automaton.StateKind(state), kinds.Accept) {
		tag = " <<accept>>"
	}
	fmt.Fprintf(builder, "%sstate %s%s\n", indent, id, tag)
	matched := automaton.Pattern()[:state]
	if matched == "" {
		matched = "ε"
	}
	fmt.Fprintf(builder, "%sstate %s : %s\n", indent, id, matched)
}

func generateTransitions(builder *strings.Builder, depth int, prefix string, automaton embedded.Automaton, state int) {
	indent := strings.Repeat(" ", depth*2)
	// symbols sharing a target are drawn as one edge
	targets := []int{}
	labels := map[int][]string{}
	for _, symbol := range symbols {
		target := automaton.Next(state, symbol)
		if _, ok := labels[target]; !ok {
			targets = append(targets, target)
		}
		labels[target] = append(labels[target], string(symbol))
	}
	for _, target := range targets {
		label := strings.Join(labels[target], "|")
		if kind := automaton.TransitionKind(state, labels[target][0][0]); kinds.IsKind(kind, kinds.Overlap, kinds.Rewind) {
			label = fmt.Sprintf("%s / %s", label, kinds.Name(kind))
		}
		fmt.Fprintf(builder, "%s%s ----> %s : %s\n", indent, stateId(prefix, state), stateId(prefix, target), label)
	}
}

func generateAutomaton(builder *strings.Builder, depth int, prefix string, automaton embedded.Automaton) {
	indent := strings.Repeat(" ", depth*2)
	fmt.Fprintf(builder, "%sstate \"%s\" as %s {\n", indent, automaton.Pattern(), prefix)
	for state := 0; state < automaton.States(); state++ {
		generateState(builder, depth+1, prefix, automaton, state)
	}
	fmt.Fprintf(builder, "%s  [*] ----> %s\n", indent, stateId(prefix, 0))
	for state := 0; state < automaton.States(); state++ {
		generateTransitions(builder, depth+1, prefix, automaton, state)
	}
	fmt.Fprintf(builder, "%s}\n", indent)
}

// Generate writes one diagram holding a composite state per automaton.
func Generate(writer io.Writer, automata ...embedded.Automaton) error {
	var builder strings.Builder
	names := make([]string, 0, len(automata))
	for _, automaton := range automata {
		names = append(names, automaton.Pattern())
	}
	fmt.Fprintf(&builder, "@startuml %s\n", strings.Join(names, "_"))
	for i, automaton := range automata {
		generateAutomaton(&builder, 0, fmt.Sprintf("p%d", i), automaton)
	}
	fmt.Fprintln(&builder, "@enduml")
	_, err := io.WriteString(writer, builder.String())
	return err
}
