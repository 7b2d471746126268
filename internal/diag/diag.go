// Package diag provides the core's single error representation. Core
// packages (lexer, parser, interp) return *diag.Error instead of calling
// os.Exit; only the CLI boundary converts a returned error into the
// fail-fast stderr-and-exit behavior described by the language.
package diag

import "fmt"

// Kind enumerates the fatal error conditions the core can raise.
type Kind string

const (
	UnknownByte             Kind = "unknown byte"
	UnterminatedString      Kind = "unterminated string"
	UnterminatedEscape      Kind = "unterminated escape"
	UnparsedTrailingTokens  Kind = "unparsed trailing tokens"
	VariableNotInScope      Kind = "variable not in scope"
	FunctionNotFound        Kind = "function not found"
	UnknownStandardFunction Kind = "unknown standard function"
	InvalidSyntaxInEval     Kind = "invalid syntax in eval"
	ResourceLimitExceeded   Kind = "resource limit exceeded"
)

// Error is the core's one failure type. Message is the human-readable
// diagnostic; callers that care about the substrings fixed by the
// language (e.g. "Variable not in scope") should match on Message, not Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
