package giac

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error from the binding layer.
type Kind string

const (
	// KindParse marks input the native evaluator rejected as malformed.
	KindParse Kind = "PARSE"

	// KindEval marks a native operation that failed after every dispatch
	// tier was attempted. Unknown command names share this kind: the input
	// is well-formed, it just names nothing the engine can evaluate, and
	// callers distinguish the case by the populated Suggestions field.
	KindEval Kind = "EVAL"

	// KindType marks a conversion between incompatible representations,
	// such as serializing an unsupported Go type or narrowing a symbolic
	// value to a fixed-width number.
	KindType Kind = "TYPE"

	// KindResource marks operations on released handles or closed
	// contexts, and calls made while the native library is unavailable.
	KindResource Kind = "RESOURCE"
)

// Error is the classified error returned by every public operation.
type Error struct {
	Kind Kind
	Op   string // command or method name, when known
	Msg  string

	// Suggestions holds nearest command names for unknown-command errors,
	// sorted by increasing edit distance.
	Suggestions []string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(e.Suggestions, ", "))
		b.WriteString("?)")
	}
	return b.String()
}

// Is reports kind equality so callers can use errors.Is with the
// exported sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Msg == ""
}

// Kind sentinels for errors.Is.
var (
	ErrParse    = &Error{Kind: KindParse}
	ErrEval     = &Error{Kind: KindEval}
	ErrType     = &Error{Kind: KindType}
	ErrResource = &Error{Kind: KindResource}
)

// KindOf extracts the Kind from an error chain, or "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func errReleased(op string) *Error {
	return newError(KindResource, op, "operation on released value")
}

func errClosed(op string) *Error {
	return newError(KindResource, op, "context is closed")
}

func errUnavailable(op string) *Error {
	return newError(KindResource, op, "giac native library unavailable")
}
