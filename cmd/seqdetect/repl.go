package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/stateforward/go-seqdetect"
	"github.com/stateforward/go-seqdetect/embedded"
	"github.com/stateforward/go-seqdetect/pkg/plantuml"
	"github.com/stateforward/go-seqdetect/pkg/set"
)

var errNoPatterns = errors.New("no patterns provided")

var commands = set.New("show", "reset", "diagram", "matches")

type repl struct {
	scanner *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	styles  styles
	session *seqdetect.Session
}

func newREPL(in io.Reader, out io.Writer, logger *slog.Logger) *repl {
	return &repl{
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		styles:  newStyles(out),
	}
}

func (r *repl) prompt(text string) (string, bool) {
	fmt.Fprint(r.out, text)
	if !r.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

func onlyBits(line string) bool {
	for i := 0; i < len(line); i++ {
		if !seqdetect.Alphabet.Contains(line[i]) {
			return false
		}
	}
	return true
}

func (r *repl) readPatterns() ([]string, error) {
	fmt.Fprintln(r.out, "Enter binary sequences to detect (one per line). Empty line to finish.")
	patterns := []string{}
	for {
		line, ok := r.prompt("> ")
		if !ok || line == "" {
			break
		}
		if !onlyBits(line) {
			fmt.Fprintln(r.out, r.styles.error.Render("  (must be non-empty and only 0/1)"))
			continue
		}
		patterns = append(patterns, line)
	}
	if len(patterns) == 0 {
		return nil, errNoPatterns
	}
	return patterns, r.scanner.Err()
}

func (r *repl) readPolicy() (seqdetect.Policy, error) {
	fmt.Fprintln(r.out, "\nMatching mode:")
	fmt.Fprintln(r.out, "  1) Overlapping")
	fmt.Fprintln(r.out, "  2) Non-overlapping")
	for {
		choice, ok := r.prompt("Enter 1 or 2: ")
		if !ok {
			if err := r.scanner.Err(); err != nil {
				return seqdetect.Overlapping, err
			}
			return seqdetect.Overlapping, io.ErrUnexpectedEOF
		}
		if choice == "1" || choice == "2" {
			return seqdetect.ParsePolicy(choice)
		}
		fmt.Fprintln(r.out, r.styles.error.Render("Invalid choice. Please enter 1 or 2."))
	}
}

func (r *repl) banner() {
	patterns := r.session.Patterns()
	fmt.Fprintln(r.out, "\nLoaded patterns:")
	for i, pattern := range patterns {
		fmt.Fprintf(r.out, "  [%d] %s (len=%d)\n", i, r.styles.pattern.Render(pattern), len(pattern))
	}
	mode := "overlap"
	if r.session.Policy() == seqdetect.NonOverlapping {
		mode = "non-overlap"
	}
	fmt.Fprintf(r.out, "Mode: %s\n\n", mode)
	fmt.Fprintln(r.out, "Stream bits live. Enter:")
	fmt.Fprintln(r.out, "  - single bit 0/1")
	fmt.Fprintln(r.out, "  - multiple bits like 010110")
	fmt.Fprintln(r.out, "  - 'show' to print counts")
	fmt.Fprintln(r.out, "  - 'reset' to zero the stream state and counts")
	fmt.Fprintln(r.out, "  - 'diagram' to print the automata as PlantUML")
	fmt.Fprintln(r.out, "  - 'matches' to print the match log")
	fmt.Fprintln(r.out, "  - empty line to quit")
	fmt.Fprintln(r.out)
}

func (r *repl) command(name string) error {
	switch name {
	case "show":
		fmt.Fprintln(r.out, "counts:", r.styles.counts(r.session.Patterns(), r.session.Counts()))
	case "reset":
		previous := r.session.ID()
		r.session = r.session.Reset()
		r.logger.Debug("session reset", "previous", previous, "id", r.session.ID())
		fmt.Fprintln(r.out, "State and counts reset.")
	case "diagram":
		automata := []embedded.Automaton{}
		for _, automaton := range r.session.Automata() {
			automata = append(automata, automaton)
		}
		return plantuml.Generate(r.out, automata...)
	case "matches":
		matches := r.session.Matches()
		if matches == nil {
			fmt.Fprintln(r.out, r.styles.dimmed.Render("(match log disabled; start with --matches)"))
			return nil
		}
		patterns := r.session.Patterns()
		for _, match := range matches {
			fmt.Fprintf(r.out, "  %s ended at %d\n", r.styles.pattern.Render(patterns[match.Pattern]), match.End)
		}
		fmt.Fprintf(r.out, "%d match(es)\n", len(matches))
	}
	return nil
}

// loop reads commands until an empty line or end of input.
func (r *repl) loop() error {
	for {
		line, ok := r.prompt("bit(s)> ")
		if !ok || line == "" {
			fmt.Fprintln(r.out, "Bye.")
			return r.scanner.Err()
		}
		if name := strings.ToLower(line); commands.Contains(name) {
			if err := r.command(name); err != nil {
				return err
			}
			continue
		}
		if !onlyBits(line) {
			fmt.Fprintln(r.out, r.styles.error.Render("Only '0'/'1', 'show', 'reset', or empty to quit."))
			continue
		}
		patterns := r.session.Patterns()
		for snapshot, err := range r.session.Steps(line) {
			if err != nil {
				return err
			}
			fmt.Fprintln(r.out, r.styles.counts(patterns, snapshot.Counts))
		}
	}
}
