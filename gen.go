package giac

import (
	"runtime"

	"github.com/giac-go/giac/internal/bindings"
)

// Gen wraps a native giac::gen handle. A Gen owns its handle: release it
// with [Gen.Release] when done, or let the garbage collector do it — a
// finalizer is installed as a safety net, but finalizer timing is not
// deterministic, so explicit release is preferred for anything beyond
// short-lived values.
//
// After Release every operation on the Gen fails with a resource error;
// the native library is never entered with a dead handle.
type Gen struct {
	h   bindings.Gen
	ctx *Context
}

// wrap takes ownership of a native handle.
func (c *Context) wrap(h bindings.Gen) *Gen {
	g := &Gen{h: h, ctx: c}
	runtime.SetFinalizer(g, (*Gen).Release)
	return g
}

// Release frees the native handle. It is idempotent: the stored handle is
// reset to the null sentinel before the native release runs, so a second
// call (or the finalizer firing after an explicit release) is a no-op.
func (g *Gen) Release() {
	if g == nil || g.h == bindings.Null {
		return
	}
	h := g.h
	g.h = bindings.Null
	runtime.SetFinalizer(g, nil)
	if g.ctx != nil && g.ctx.eng != nil {
		engineMu.Lock()
		g.ctx.eng.FreeGen(h)
		engineMu.Unlock()
	}
}

// Released reports whether the handle has been released.
func (g *Gen) Released() bool {
	return g == nil || g.h == bindings.Null
}

// handle guards every operation: a released Gen fails before any native
// call.
func (g *Gen) handle(op string) (bindings.Gen, *Error) {
	if g == nil || g.h == bindings.Null {
		return bindings.Null, errReleased(op)
	}
	return g.h, nil
}

// text returns the native textual form, or a classified error.
func (g *Gen) text(op string) (string, error) {
	h, errg := g.handle(op)
	if errg != nil {
		return "", errg
	}
	if err := g.ctx.usable(op); err != nil {
		return "", err
	}
	engineMu.Lock()
	defer engineMu.Unlock()
	return g.ctx.eng.GenString(g.ctx.ctx, h), nil
}

// String implements fmt.Stringer. It returns "" for released values;
// use [Gen.Text] when the failure matters.
func (g *Gen) String() string {
	s, err := g.text("string")
	if err != nil {
		return ""
	}
	return s
}

// Text returns the native textual form of the value.
func (g *Gen) Text() (string, error) {
	return g.text("text")
}

// Int narrows the value to an int64. Symbolic or non-integer values fail
// with a type error.
func (g *Gen) Int() (int64, error) {
	h, errg := g.handle("int")
	if errg != nil {
		return 0, errg
	}
	if err := g.ctx.usable("int"); err != nil {
		return 0, err
	}
	engineMu.Lock()
	v, ok := g.ctx.eng.AsInt(g.ctx.ctx, h)
	engineMu.Unlock()
	if !ok {
		return 0, newError(KindType, "int", "value has no integer form")
	}
	return v, nil
}

// Float64 narrows the value to a float64. Symbolic values fail with a
// type error.
func (g *Gen) Float64() (float64, error) {
	h, errg := g.handle("float64")
	if errg != nil {
		return 0, errg
	}
	if err := g.ctx.usable("float64"); err != nil {
		return 0, err
	}
	engineMu.Lock()
	v, ok := g.ctx.eng.AsFloat(g.ctx.ctx, h)
	engineMu.Unlock()
	if !ok {
		return 0, newError(KindType, "float64", "value has no float form")
	}
	return v, nil
}

// Len returns the element count of a vector or list value.
func (g *Gen) Len() (int, error) {
	h, errg := g.handle("len")
	if errg != nil {
		return 0, errg
	}
	if err := g.ctx.usable("len"); err != nil {
		return 0, err
	}
	engineMu.Lock()
	n, ok := g.ctx.eng.VectorLen(g.ctx.ctx, h)
	engineMu.Unlock()
	if !ok {
		return 0, newError(KindType, "len", "value is not a vector")
	}
	return n, nil
}

// At returns the i-th element of a vector value.
func (g *Gen) At(i int) (*Gen, error) {
	h, errg := g.handle("at")
	if errg != nil {
		return nil, errg
	}
	if err := g.ctx.usable("at"); err != nil {
		return nil, err
	}
	engineMu.Lock()
	eh := g.ctx.eng.VectorAt(g.ctx.ctx, h, i)
	engineMu.Unlock()
	if eh == bindings.Null {
		return nil, newError(KindEval, "at", "no element %d", i)
	}
	return g.ctx.wrap(eh), nil
}

// MatrixAt returns the (i,j) element of a matrix value.
func (g *Gen) MatrixAt(i, j int) (*Gen, error) {
	h, errg := g.handle("matrixAt")
	if errg != nil {
		return nil, errg
	}
	if err := g.ctx.usable("matrixAt"); err != nil {
		return nil, err
	}
	engineMu.Lock()
	eh := g.ctx.eng.MatrixAt(g.ctx.ctx, h, i, j)
	engineMu.Unlock()
	if eh == bindings.Null {
		return nil, newError(KindEval, "matrixAt", "no element (%d,%d)", i, j)
	}
	return g.ctx.wrap(eh), nil
}

// -----------------------------------------------------------------------------
// Operator forms
// -----------------------------------------------------------------------------

// Add returns g + other.
func (g *Gen) Add(other *Gen) (*Gen, error) { return g.binaryOp(bindings.OpAdd, "+", other) }

// Sub returns g - other.
func (g *Gen) Sub(other *Gen) (*Gen, error) { return g.binaryOp(bindings.OpSub, "-", other) }

// Mul returns g * other.
func (g *Gen) Mul(other *Gen) (*Gen, error) { return g.binaryOp(bindings.OpMul, "*", other) }

// Div returns g / other.
func (g *Gen) Div(other *Gen) (*Gen, error) { return g.binaryOp(bindings.OpDiv, "/", other) }

// Pow returns g ^ other.
func (g *Gen) Pow(other *Gen) (*Gen, error) { return g.binaryOp(bindings.OpPow, "^", other) }

// Neg returns -g.
func (g *Gen) Neg() (*Gen, error) {
	h, errg := g.handle("neg")
	if errg != nil {
		return nil, errg
	}
	c := g.ctx
	if err := c.usable("neg"); err != nil {
		return nil, err
	}
	engineMu.Lock()
	defer engineMu.Unlock()
	if rh := c.eng.Unary(c.ctx, bindings.OpNeg, h); rh != bindings.Null {
		return c.wrap(rh), nil
	}
	s := c.eng.GenString(c.ctx, h)
	rh := c.eng.EvalString(c.ctx, "-("+s+")")
	if rh == bindings.Null {
		return nil, newError(KindEval, "neg", "negation failed")
	}
	return c.wrap(rh), nil
}

// binaryOp tries the typed entry point and falls back to evaluating the
// infix text. Operators skip the by-name tier: GIAC's generic dispatcher
// does not accept operator glyphs as command names.
func (g *Gen) binaryOp(op bindings.Op, infix string, other *Gen) (*Gen, error) {
	a, errg := g.handle(infix)
	if errg != nil {
		return nil, errg
	}
	b, errg := other.handle(infix)
	if errg != nil {
		return nil, errg
	}
	c := g.ctx
	if err := c.usable(infix); err != nil {
		return nil, err
	}
	engineMu.Lock()
	defer engineMu.Unlock()
	if h := c.eng.Binary(c.ctx, op, a, b); h != bindings.Null {
		return c.wrap(h), nil
	}
	as := c.eng.GenString(c.ctx, a)
	bs := c.eng.GenString(c.ctx, b)
	h := c.eng.EvalString(c.ctx, "("+as+")"+infix+"("+bs+")")
	if h == bindings.Null {
		return nil, newError(KindEval, infix, "operation failed")
	}
	return c.wrap(h), nil
}

// -----------------------------------------------------------------------------
// Command shorthands
// -----------------------------------------------------------------------------

// Simplify returns simplify(g).
func (g *Gen) Simplify() (*Gen, error) { return g.ctx.Call("simplify", g) }

// Factor returns factor(g).
func (g *Gen) Factor() (*Gen, error) { return g.ctx.Call("factor", g) }

// Expand returns expand(g).
func (g *Gen) Expand() (*Gen, error) { return g.ctx.Call("expand", g) }

// Diff returns diff(g, v).
func (g *Gen) Diff(v string) (*Gen, error) { return g.ctx.Call("diff", g, v) }

// Integrate returns integrate(g, v).
func (g *Gen) Integrate(v string) (*Gen, error) { return g.ctx.Call("integrate", g, v) }
