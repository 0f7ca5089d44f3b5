package giac

import (
	"sync"

	"github.com/giac-go/giac/internal/bindings"
)

// Context is a GIAC evaluation context.
//
// Create one with [New], or use the process-wide [Default] context, and
// call [Context.Close] when done. Contexts are safe for concurrent use:
// every native call is serialized on one process-wide lock. Note that the
// native library keeps hidden global state, so two contexts are NOT
// isolated from each other — they only carry separate assumption and
// variable tables on the native side.
//
//	ctx, err := giac.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//	g, err := ctx.Eval("factor(x^4-1)")
type Context struct {
	eng    bindings.Engine
	ctx    bindings.Ctx
	reg    *registry
	closed bool
}

// The shim is dlopened once per process; every Context shares the engine
// and the command registry bootstrapped from it.
var (
	sharedOnce sync.Once
	sharedEng  bindings.Engine
	sharedReg  *registry
	sharedErr  error
)

func openShared() (bindings.Engine, *registry, error) {
	sharedOnce.Do(func() {
		sharedReg = bootstrapRegistry(nil)
		cfg, err := ConfigFromEnv()
		if err != nil {
			sharedErr = err
			return
		}
		if cfg.DisableNative {
			sharedErr = bindings.ErrUnavailable
			return
		}
		eng, err := bindings.Open(cfg.LibraryPath)
		if err != nil {
			sharedErr = err
			return
		}
		sharedEng = eng
		sharedReg = bootstrapRegistry(eng)
	})
	return sharedEng, sharedReg, sharedErr
}

// New creates a fresh evaluation context backed by the shared native
// library. It fails when the library cannot be loaded; use [Default] for
// a context that degrades softly instead.
func New() (*Context, error) {
	eng, reg, err := openShared()
	if err != nil {
		return nil, err
	}
	return newContext(eng, reg)
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process-wide context, creating it on first use. It
// never fails: when the native library is unavailable the context runs in
// degraded mode, where the registry is empty and every native operation
// returns a resource error. The default context lives until process exit.
func Default() *Context {
	defaultOnce.Do(func() {
		eng, reg, _ := openShared()
		ctx, err := newContext(eng, reg)
		if err != nil {
			ctx, _ = newContext(nil, reg)
		}
		defaultCtx = ctx
	})
	return defaultCtx
}

// newContext wires a context to an engine and registry. Tests inject a
// fake engine here. Native context creation reports failure through the
// null sentinel; that sentinel must never be handed out as a live context.
func newContext(eng bindings.Engine, reg *registry) (*Context, error) {
	if reg == nil {
		reg = bootstrapRegistry(nil)
	}
	c := &Context{eng: eng, reg: reg}
	if eng != nil {
		engineMu.Lock()
		c.ctx = eng.NewContext()
		engineMu.Unlock()
		if c.ctx == bindings.Null {
			return nil, newError(KindResource, "new", "native context creation failed")
		}
	}
	return c, nil
}

// Close releases the native context. It is idempotent; operations on a
// closed context fail with a resource error.
func (c *Context) Close() {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	if c.eng != nil && c.ctx != bindings.Null {
		engineMu.Lock()
		c.eng.FreeContext(c.ctx)
		engineMu.Unlock()
	}
	c.ctx = bindings.Null
}

// usable rejects calls on closed or engine-less contexts before any
// native call is made.
func (c *Context) usable(op string) *Error {
	if c == nil || c.closed {
		return errClosed(op)
	}
	if c.eng == nil {
		return errUnavailable(op)
	}
	if c.ctx == bindings.Null {
		return errClosed(op)
	}
	return nil
}

// Eval evaluates a textual GIAC expression and returns the wrapped result.
//
//	g, err := ctx.Eval("2+3")
//	g.String() // "5"
func (c *Context) Eval(expr string) (*Gen, error) {
	if err := c.usable("eval"); err != nil {
		return nil, err
	}
	engineMu.Lock()
	h := c.eng.EvalString(c.ctx, expr)
	engineMu.Unlock()
	if h == bindings.Null {
		return nil, newError(KindParse, "eval", "giac rejected %q", expr)
	}
	return c.wrap(h), nil
}

// Commands lists the known command names with the given prefix, sorted.
// An empty prefix lists every command. The list is empty in degraded mode.
func (c *Context) Commands(prefix string) []string {
	if c == nil {
		return nil
	}
	return c.reg.withPrefix(prefix)
}

// HelpFor returns the help record for a command name.
func (c *Context) HelpFor(name string) (Help, bool) {
	if c == nil {
		return Help{}, false
	}
	return c.reg.lookup(name)
}
