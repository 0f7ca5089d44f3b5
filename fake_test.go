package giac

import (
	"strconv"
	"strings"

	"github.com/giac-go/giac/internal/bindings"
)

// fakeEngine is an in-memory Engine with per-entry-point call counters,
// used to verify dispatch order and that rejected inputs never reach the
// native layer.
type fakeEngine struct {
	next  bindings.Gen
	vals  map[bindings.Gen]string
	freed map[bindings.Gen]int

	contexts     int
	freedCtx     int
	ctxFail      bool
	commands     []string
	help         map[string]bindings.HelpEntry
	evalResults  map[string]string
	applyResults map[string]string

	// Forced tier failures.
	typedFail map[bindings.Op]bool
	applyFail bool

	evalCalls    int
	unaryCalls   int
	binaryCalls  int
	ternaryCalls int
	applyCalls   int
	stringCalls  int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		vals:         make(map[bindings.Gen]string),
		freed:        make(map[bindings.Gen]int),
		help:         make(map[string]bindings.HelpEntry),
		evalResults:  make(map[string]string),
		applyResults: make(map[string]string),
		typedFail:    make(map[bindings.Op]bool),
	}
}

// nativeCalls totals every entry point that crosses into the fake library.
func (f *fakeEngine) nativeCalls() int {
	return f.evalCalls + f.unaryCalls + f.binaryCalls + f.ternaryCalls +
		f.applyCalls + f.stringCalls
}

func (f *fakeEngine) newGen(val string) bindings.Gen {
	f.next++
	f.vals[f.next] = val
	return f.next
}

func (f *fakeEngine) NewContext() bindings.Ctx {
	if f.ctxFail {
		return bindings.Null
	}
	f.contexts++
	return bindings.Ctx(f.contexts)
}

func (f *fakeEngine) FreeContext(ctx bindings.Ctx) { f.freedCtx++ }

// evalArith handles the integer sums the tests exercise, with or without
// parenthesized operands ("2+3", "(2)+(3)").
func evalArith(expr string) (string, bool) {
	parts := strings.Split(expr, "+")
	if len(parts) != 2 {
		return "", false
	}
	trim := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "(")
		return strings.TrimSuffix(s, ")")
	}
	a, err1 := strconv.ParseInt(trim(parts[0]), 10, 64)
	b, err2 := strconv.ParseInt(trim(parts[1]), 10, 64)
	if err1 != nil || err2 != nil {
		return "", false
	}
	return strconv.FormatInt(a+b, 10), true
}

func (f *fakeEngine) EvalString(ctx bindings.Ctx, expr string) bindings.Gen {
	f.evalCalls++
	if v, ok := f.evalResults[expr]; ok {
		return f.newGen(v)
	}
	if v, ok := evalArith(expr); ok {
		return f.newGen(v)
	}
	// Literals the tests round-trip unchanged: numbers, symbols, vectors.
	if expr != "" && !strings.ContainsAny(expr, "()=") {
		return f.newGen(expr)
	}
	return bindings.Null
}

func (f *fakeEngine) GenString(ctx bindings.Ctx, g bindings.Gen) string {
	f.stringCalls++
	return f.vals[g]
}

func (f *fakeEngine) FreeGen(g bindings.Gen) { f.freed[g]++ }

func isOperatorGlyph(name string) bool {
	switch name {
	case "+", "-", "*", "/", "^":
		return true
	}
	return false
}

// symbolic renders the result the way the tests expect a CAS echo:
// operators as infix, commands as name(args).
func (f *fakeEngine) symbolic(name string, args ...bindings.Gen) string {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = f.vals[a]
	}
	if isOperatorGlyph(name) && len(texts) == 2 {
		if v, ok := evalArith("(" + texts[0] + ")+(" + texts[1] + ")"); ok && name == "+" {
			return v
		}
		return "(" + texts[0] + ")" + name + "(" + texts[1] + ")"
	}
	return name + "(" + strings.Join(texts, ",") + ")"
}

func (f *fakeEngine) Unary(ctx bindings.Ctx, op bindings.Op, a bindings.Gen) bindings.Gen {
	f.unaryCalls++
	if f.typedFail[op] {
		return bindings.Null
	}
	return f.newGen(f.symbolic(op.Name(), a))
}

func (f *fakeEngine) Binary(ctx bindings.Ctx, op bindings.Op, a, b bindings.Gen) bindings.Gen {
	f.binaryCalls++
	if f.typedFail[op] {
		return bindings.Null
	}
	return f.newGen(f.symbolic(op.Name(), a, b))
}

func (f *fakeEngine) Ternary(ctx bindings.Ctx, op bindings.Op, a, b, c bindings.Gen) bindings.Gen {
	f.ternaryCalls++
	if f.typedFail[op] {
		return bindings.Null
	}
	return f.newGen(f.symbolic(op.Name(), a, b, c))
}

func (f *fakeEngine) Apply(ctx bindings.Ctx, name string, args []bindings.Gen) bindings.Gen {
	f.applyCalls++
	if f.applyFail {
		return bindings.Null
	}
	if v, ok := f.applyResults[name]; ok {
		return f.newGen(v)
	}
	return f.newGen(f.symbolic(name, args...))
}

func (f *fakeEngine) AsInt(ctx bindings.Ctx, g bindings.Gen) (int64, bool) {
	v, err := strconv.ParseInt(f.vals[g], 10, 64)
	return v, err == nil
}

func (f *fakeEngine) AsFloat(ctx bindings.Ctx, g bindings.Gen) (float64, bool) {
	v, err := strconv.ParseFloat(f.vals[g], 64)
	return v, err == nil
}

func (f *fakeEngine) vectorElems(g bindings.Gen) ([]string, bool) {
	v := f.vals[g]
	if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		return nil, false
	}
	inner := v[1 : len(v)-1]
	if inner == "" {
		return nil, true
	}
	return strings.Split(inner, ","), true
}

func (f *fakeEngine) VectorLen(ctx bindings.Ctx, g bindings.Gen) (int, bool) {
	elems, ok := f.vectorElems(g)
	if !ok {
		return 0, false
	}
	return len(elems), true
}

func (f *fakeEngine) VectorAt(ctx bindings.Ctx, g bindings.Gen, i int) bindings.Gen {
	elems, ok := f.vectorElems(g)
	if !ok || i < 0 || i >= len(elems) {
		return bindings.Null
	}
	return f.newGen(elems[i])
}

func (f *fakeEngine) MatrixAt(ctx bindings.Ctx, g bindings.Gen, i, j int) bindings.Gen {
	v := f.vals[g]
	if !strings.HasPrefix(v, "[[") || !strings.HasSuffix(v, "]]") {
		return bindings.Null
	}
	rows := strings.Split(v[2:len(v)-2], "],[")
	if i < 0 || i >= len(rows) {
		return bindings.Null
	}
	cols := strings.Split(rows[i], ",")
	if j < 0 || j >= len(cols) {
		return bindings.Null
	}
	return f.newGen(cols[j])
}

func (f *fakeEngine) CommandNames() []string { return f.commands }

func (f *fakeEngine) Help(name string) (bindings.HelpEntry, bool) {
	h, ok := f.help[name]
	return h, ok
}

func helpEntry(name, category, synopsis string, related ...string) bindings.HelpEntry {
	return bindings.HelpEntry{
		Name:     name,
		Category: category,
		Synopsis: synopsis,
		Related:  related,
	}
}

// newFakeContext wires a context to a fake engine with the given known
// commands.
func newFakeContext(f *fakeEngine, commands ...string) *Context {
	f.commands = commands
	ctx, err := newContext(f, bootstrapRegistry(f))
	if err != nil {
		panic(err)
	}
	return ctx
}

// newDegradedContext builds an engine-less context; it cannot fail.
func newDegradedContext() *Context {
	ctx, _ := newContext(nil, nil)
	return ctx
}
