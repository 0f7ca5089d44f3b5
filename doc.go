// Package giac provides Go bindings for the GIAC computer-algebra engine.
//
// # Overview
//
// giac loads the GIAC C shim at runtime and wraps it with:
//
//   - Gen: opaque, reference-owning handles with idempotent release and a
//     garbage-collector finalizer as a safety net
//   - Context: evaluation contexts serialized on one process-wide lock,
//     since the native library is not reentrant
//   - Tiered command dispatch: typed entry points for the hot operation
//     set, a generic by-name dispatcher, and a textual fallback covering
//     the long tail of commands
//   - A command registry bootstrapped from the native help database, used
//     for fail-fast validation with "did you mean" suggestions
//
// All symbolic computation happens inside the native library; this package
// only marshals calls and data across the boundary.
//
// # Quick Start
//
//	import "github.com/giac-go/giac"
//
//	func main() {
//	    ctx, err := giac.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer ctx.Close()
//
//	    g, _ := ctx.Eval("factor(x^4-1)")
//	    defer g.Release()
//	    fmt.Println(g) // "(x-1)*(x+1)*(x^2+1)"
//
//	    h, _ := ctx.Call("integrate", g, "x")
//	    defer h.Release()
//	}
//
// # Calling Commands
//
// Context.Call accepts *Gen handles or plain Go values. Go values are
// serialized into GIAC's textual call syntax: *big.Rat as (num)/(den),
// complex128 as (re)+(im)*i, slices as [e1,e2,...].
//
//	ctx.Call("solve", "x^2=2", "x")
//	ctx.Call("horner", []any{1, -3, 2}, big.NewRat(1, 2))
//
// # Concurrency
//
// Contexts may be shared across goroutines: every native call is
// serialized on a single process-wide reentrant lock. Two contexts are
// not isolated at the native level — GIAC keeps hidden global state —
// so treat separate contexts as separate variable tables, not separate
// engines.
//
// # Degraded Mode
//
// When the shim cannot be loaded (or GIAC_DISABLE_NATIVE is set),
// Default() still returns a context: the command registry is empty,
// name validation is skipped, and every native operation fails with a
// classified resource error.
package giac
