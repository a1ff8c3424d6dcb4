package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for blank input. Callers treat it as a no-op.
	ErrEmpty = errors.New("expr: empty expression")

	// ErrDiagnosticEcho is returned when the input is one of our own
	// diagnostic strings submitted back unchanged. Also a no-op.
	ErrDiagnosticEcho = errors.New("expr: diagnostic text ignored")

	ErrSyntax          = errors.New("expr: invalid syntax")
	ErrUndefinedSymbol = errors.New("expr: undefined symbol")
	ErrShape           = errors.New("expr: grid shape mismatch")
)

type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at column %d: %s", ErrSyntax, e.Pos+1, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

type UndefinedSymbolError struct {
	Name string
	Pos  int
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("%s %q at column %d", ErrUndefinedSymbol, e.Name, e.Pos+1)
}

func (e *UndefinedSymbolError) Unwrap() error { return ErrUndefinedSymbol }

const (
	diagSyntax   = "INVALID SYNTAX"
	diagFunction = "INVALID FUNCTION NAME: "
	diagPrefix   = "INVALID"
)

// Diagnostic returns the text shown in the input field for a failed submit.
// No-op errors and nil produce "".
func Diagnostic(err error) string {
	var undef *UndefinedSymbolError
	switch {
	case err == nil, errors.Is(err, ErrEmpty), errors.Is(err, ErrDiagnosticEcho):
		return ""
	case errors.As(err, &undef):
		return diagFunction + undef.Name
	default:
		return diagSyntax
	}
}

// IsNoop reports whether a submit error should leave the UI untouched.
func IsNoop(err error) bool {
	return errors.Is(err, ErrEmpty) || errors.Is(err, ErrDiagnosticEcho)
}
