//go:build linux || darwin || freebsd

package bindings

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

// Library is the purego-backed Engine. It dlopens the GIAC C shim once and
// resolves every entry point up front, so a missing required symbol is
// reported at Open time rather than on first use.
type Library struct {
	so uintptr

	contextNew  func() Ctx
	contextFree func(Ctx)
	evalString  func(Ctx, string) Gen
	genString   func(Ctx, Gen) *byte
	stringFree  func(*byte)
	genFree     func(Gen)
	apply       func(Ctx, string, *Gen, int32) Gen
	toInt       func(Ctx, Gen, *int64) int32
	toFloat     func(Ctx, Gen, *float64) int32
	vectorSize  func(Ctx, Gen) int32
	vectorAt    func(Ctx, Gen, int32) Gen
	matrixAt    func(Ctx, Gen, int32, int32) Gen
	commandList func() *byte
	helpLookup  func(string) *byte

	// Typed fast-path entry points. Entries are absent when the shim does
	// not export the symbol; the dispatcher falls through to tier 2.
	unary   map[Op]func(Ctx, Gen) Gen
	binary  map[Op]func(Ctx, Gen, Gen) Gen
	ternary map[Op]func(Ctx, Gen, Gen, Gen) Gen
}

// DefaultLibraryName returns the platform soname of the GIAC C shim.
func DefaultLibraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return "libgiac_c.dylib"
	default:
		return "libgiac_c.so"
	}
}

// Open loads the shim at path (or the default soname when path is empty)
// and resolves its entry points.
func Open(path string) (Engine, error) {
	if path == "" {
		path = DefaultLibraryName()
	}
	so, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	l := &Library{
		so:      so,
		unary:   make(map[Op]func(Ctx, Gen) Gen),
		binary:  make(map[Op]func(Ctx, Gen, Gen) Gen),
		ternary: make(map[Op]func(Ctx, Gen, Gen, Gen) Gen),
	}

	required := []struct {
		fptr any
		name string
	}{
		{&l.contextNew, "giac_context_new"},
		{&l.contextFree, "giac_context_free"},
		{&l.evalString, "giac_eval_string"},
		{&l.genString, "giac_gen_string"},
		{&l.stringFree, "giac_string_free"},
		{&l.genFree, "giac_gen_free"},
		{&l.apply, "giac_apply"},
		{&l.toInt, "giac_gen_to_int"},
		{&l.toFloat, "giac_gen_to_double"},
		{&l.vectorSize, "giac_vector_size"},
		{&l.vectorAt, "giac_vector_at"},
		{&l.matrixAt, "giac_matrix_at"},
		{&l.commandList, "giac_command_list"},
		{&l.helpLookup, "giac_help"},
	}
	for _, r := range required {
		if _, err := purego.Dlsym(so, r.name); err != nil {
			return nil, fmt.Errorf("%w: missing symbol %s", ErrUnavailable, r.name)
		}
		purego.RegisterLibFunc(r.fptr, so, r.name)
	}

	// Typed entry points are optional per symbol.
	for _, op := range TypedOps() {
		sym := op.symbol()
		if _, err := purego.Dlsym(so, sym); err != nil {
			continue
		}
		switch op.Arity() {
		case 1:
			var fn func(Ctx, Gen) Gen
			purego.RegisterLibFunc(&fn, so, sym)
			l.unary[op] = fn
		case 2:
			var fn func(Ctx, Gen, Gen) Gen
			purego.RegisterLibFunc(&fn, so, sym)
			l.binary[op] = fn
		case 3:
			var fn func(Ctx, Gen, Gen, Gen) Gen
			purego.RegisterLibFunc(&fn, so, sym)
			l.ternary[op] = fn
		}
	}

	return l, nil
}

// takeString copies a shim-owned C string into Go memory and frees it.
func (l *Library) takeString(p *byte) string {
	if p == nil {
		return ""
	}
	s := unix.BytePtrToString(p)
	l.stringFree(p)
	return s
}

func (l *Library) NewContext() Ctx { return l.contextNew() }

func (l *Library) FreeContext(ctx Ctx) {
	if ctx != Null {
		l.contextFree(ctx)
	}
}

func (l *Library) EvalString(ctx Ctx, expr string) Gen {
	return l.evalString(ctx, expr)
}

func (l *Library) GenString(ctx Ctx, g Gen) string {
	return l.takeString(l.genString(ctx, g))
}

func (l *Library) FreeGen(g Gen) {
	if g != Null {
		l.genFree(g)
	}
}

func (l *Library) Unary(ctx Ctx, op Op, a Gen) Gen {
	fn, ok := l.unary[op]
	if !ok {
		return Null
	}
	return fn(ctx, a)
}

func (l *Library) Binary(ctx Ctx, op Op, a, b Gen) Gen {
	fn, ok := l.binary[op]
	if !ok {
		return Null
	}
	return fn(ctx, a, b)
}

func (l *Library) Ternary(ctx Ctx, op Op, a, b, c Gen) Gen {
	fn, ok := l.ternary[op]
	if !ok {
		return Null
	}
	return fn(ctx, a, b, c)
}

func (l *Library) Apply(ctx Ctx, name string, args []Gen) Gen {
	if len(args) == 0 {
		return l.apply(ctx, name, nil, 0)
	}
	return l.apply(ctx, name, &args[0], int32(len(args)))
}

func (l *Library) AsInt(ctx Ctx, g Gen) (int64, bool) {
	var out int64
	return out, l.toInt(ctx, g, &out) != 0
}

func (l *Library) AsFloat(ctx Ctx, g Gen) (float64, bool) {
	var out float64
	return out, l.toFloat(ctx, g, &out) != 0
}

func (l *Library) VectorLen(ctx Ctx, g Gen) (int, bool) {
	n := l.vectorSize(ctx, g)
	if n < 0 {
		return 0, false
	}
	return int(n), true
}

func (l *Library) VectorAt(ctx Ctx, g Gen, i int) Gen {
	return l.vectorAt(ctx, g, int32(i))
}

func (l *Library) MatrixAt(ctx Ctx, g Gen, i, j int) Gen {
	return l.matrixAt(ctx, g, int32(i), int32(j))
}

func (l *Library) CommandNames() []string {
	raw := l.takeString(l.commandList())
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	names := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}

// Help parses the shim's help record. The shim emits one field per line:
// category, synopsis, comma-joined related names, then one example per
// remaining line.
func (l *Library) Help(name string) (HelpEntry, bool) {
	raw := l.takeString(l.helpLookup(name))
	if raw == "" {
		return HelpEntry{}, false
	}
	entry := HelpEntry{Name: name}
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch i {
		case 0:
			entry.Category = line
		case 1:
			entry.Synopsis = line
		case 2:
			if line != "" {
				for _, rel := range strings.Split(line, ",") {
					if rel = strings.TrimSpace(rel); rel != "" {
						entry.Related = append(entry.Related, rel)
					}
				}
			}
		default:
			if line != "" {
				entry.Examples = append(entry.Examples, line)
			}
		}
	}
	return entry, true
}
