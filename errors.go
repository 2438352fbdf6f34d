package seqdetect

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrInvalidSymbol  = errors.New("invalid symbol")
)

// PatternError reports a pattern rejected at construction. Index is the
// pattern's position in the configured list, or -1 when built on its own.
type PatternError struct {
	Index   int
	Pattern string
	Reason  string
}

func (err *PatternError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("invalid pattern %q: %s", err.Pattern, err.Reason)
	}
	return fmt.Sprintf("invalid pattern %q at index %d: %s", err.Pattern, err.Index, err.Reason)
}

func (err *PatternError) Unwrap() error {
	return ErrInvalidPattern
}

// SymbolError reports a symbol outside the alphabet. Offset is the position
// within the batch handed to StepMany or Steps, 0 for Step.
type SymbolError struct {
	Symbol byte
	Offset int
}

func (err *SymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q at offset %d: must be '0' or '1'", err.Symbol, err.Offset)
}

func (err *SymbolError) Unwrap() error {
	return ErrInvalidSymbol
}

func validate(pattern string) string {
	if pattern == "" {
		return "pattern is empty"
	}
	for i := 0; i < len(pattern); i++ {
		if !Alphabet.Contains(pattern[i]) {
			return fmt.Sprintf("symbol %q at offset %d is not 0 or 1", pattern[i], i)
		}
	}
	return ""
}
