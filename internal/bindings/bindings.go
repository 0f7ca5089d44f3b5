// Package bindings defines the native entry-point surface of the GIAC C
// shim and provides the purego-backed implementation that loads it at
// runtime.
//
// Nothing above this package touches dlopen, symbols, or C memory. The
// giac package talks to an Engine; tests substitute their own.
//
// Failure never crosses the boundary as a panic or an exception: every
// entry point that produces a value returns the Null sentinel (or an
// ok=false pair) when the native side fails.
package bindings

import "errors"

// Gen is an opaque handle to a native giac::gen. It is meaningless to the
// Go side except for passing back into entry points.
type Gen uintptr

// Ctx is an opaque handle to a native evaluation context.
type Ctx uintptr

// Null is the agreed "operation failed" sentinel for both handle types.
const Null = 0

// ErrUnavailable is returned by Open when the native library cannot be
// loaded on this platform or at the configured path.
var ErrUnavailable = errors.New("bindings: giac native library unavailable")

// HelpEntry is one record from the native help database. It is consumed
// read-only to build the command registry.
type HelpEntry struct {
	Name     string
	Category string
	Synopsis string
	Related  []string
	Examples []string
}

// Engine is the set of native entry points the binding layer needs.
//
// Implementations must be safe to call from any goroutine as long as the
// caller holds the process-wide serialization lock; the native library has
// global mutable state and is not reentrant.
type Engine interface {
	// NewContext creates a native evaluation context. Null on failure.
	NewContext() Ctx
	// FreeContext releases a native context. Calling it with Null is a no-op.
	FreeContext(ctx Ctx)

	// EvalString parses and evaluates a textual command. Null on failure.
	EvalString(ctx Ctx, expr string) Gen
	// GenString returns the textual form of a handle.
	GenString(ctx Ctx, g Gen) string
	// FreeGen releases a native handle. Calling it with Null is a no-op.
	FreeGen(g Gen)

	// Unary, Binary and Ternary are the typed fast-path entry points for
	// the hot operation set. A missing entry point or a native failure is
	// reported as Null; the dispatcher falls through to the next tier.
	Unary(ctx Ctx, op Op, a Gen) Gen
	Binary(ctx Ctx, op Op, a, b Gen) Gen
	Ternary(ctx Ctx, op Op, a, b, c Gen) Gen

	// Apply invokes a command by name with native arguments. Null on failure.
	Apply(ctx Ctx, name string, args []Gen) Gen

	// AsInt and AsFloat convert a handle to a fixed-width value.
	// ok is false when the value has no such representation.
	AsInt(ctx Ctx, g Gen) (int64, bool)
	AsFloat(ctx Ctx, g Gen) (float64, bool)

	// VectorLen reports the element count of a vector/list handle.
	// ok is false when the handle is not a vector.
	VectorLen(ctx Ctx, g Gen) (int, bool)
	// VectorAt returns the i-th element of a vector. Null on failure.
	VectorAt(ctx Ctx, g Gen, i int) Gen
	// MatrixAt returns the (i,j) element of a matrix. Null on failure.
	MatrixAt(ctx Ctx, g Gen, i, j int) Gen

	// CommandNames returns the full native command list, or nil when the
	// introspection facility is unavailable.
	CommandNames() []string
	// Help looks up the help record for a command name.
	Help(name string) (HelpEntry, bool)
}
