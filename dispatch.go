package giac

import (
	"github.com/giac-go/giac/internal/bindings"
)

// The tier-1 table: (command name, arity) → typed entry point. Populated
// once from the hot operation set; lookups thereafter are read-only.
type opKey struct {
	name  string
	arity int
}

var typedOps = func() map[opKey]bindings.Op {
	m := make(map[opKey]bindings.Op)
	for _, op := range bindings.TypedOps() {
		m[opKey{op.Name(), op.Arity()}] = op
	}
	return m
}()

// Call invokes a GIAC command by name.
//
// Arguments may be *Gen values or Go values (strings, integers, floats,
// *big.Rat, complex128, slices); see [Context.Eval] for the textual route.
// Dispatch is tiered:
//
//  1. a typed native entry point for (name, arity), when every argument
//     is already a *Gen;
//  2. the generic by-name native dispatcher, same precondition;
//  3. textual evaluation of name(arg1,arg2,...), always available.
//
// A tier signalling failure falls through to the next; only the final
// tier's failure is surfaced. Unknown names and released handles are
// rejected before any native call, unknown names with nearest-command
// suggestions.
//
//	g, _ := ctx.Eval("x^2-1")
//	f, err := ctx.Call("factor", g)
func (c *Context) Call(name string, args ...any) (*Gen, error) {
	if err := c.usable(name); err != nil {
		return nil, err
	}

	// Released handles fail fast, before validation and before any
	// native call.
	gens := make([]bindings.Gen, 0, len(args))
	allGens := true
	for _, a := range args {
		g, ok := a.(*Gen)
		if !ok {
			allGens = false
			continue
		}
		h, errg := g.handle(name)
		if errg != nil {
			return nil, errg
		}
		gens = append(gens, h)
	}

	// Command validation precedes dispatch. An empty registry means the
	// introspection bootstrap failed; validation is skipped and tier 3
	// surfaces native failures instead.
	if !c.reg.empty() && !c.reg.known(name) {
		return nil, &Error{
			Kind:        KindEval,
			Op:          name,
			Msg:         "unknown giac command",
			Suggestions: c.reg.suggest(name),
		}
	}

	// Tiers 1 and 2 need native handles for every argument.
	if allGens {
		if g := c.callNative(name, gens); g != nil {
			return g, nil
		}
	}

	// Tier 3: textual call syntax through the string evaluator.
	call, err := c.buildCall(name, args)
	if err != nil {
		return nil, err
	}
	engineMu.Lock()
	h := c.eng.EvalString(c.ctx, call)
	engineMu.Unlock()
	if h == bindings.Null {
		return nil, newError(KindEval, name, "evaluation of %q failed", call)
	}
	return c.wrap(h), nil
}

// callNative attempts tiers 1 and 2 under a single lock acquisition.
// It returns nil when both tiers signal failure.
func (c *Context) callNative(name string, gens []bindings.Gen) *Gen {
	engineMu.Lock()
	defer engineMu.Unlock()

	if op, ok := typedOps[opKey{name, len(gens)}]; ok {
		var h bindings.Gen
		switch len(gens) {
		case 1:
			h = c.eng.Unary(c.ctx, op, gens[0])
		case 2:
			h = c.eng.Binary(c.ctx, op, gens[0], gens[1])
		case 3:
			h = c.eng.Ternary(c.ctx, op, gens[0], gens[1], gens[2])
		}
		if h != bindings.Null {
			return c.wrap(h)
		}
	}

	if h := c.eng.Apply(c.ctx, name, gens); h != bindings.Null {
		return c.wrap(h)
	}
	return nil
}
