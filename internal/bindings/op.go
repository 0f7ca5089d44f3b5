package bindings

// Op enumerates the hot operation set that has typed native entry points.
// The dispatcher's tier-1 table maps command names onto these.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNeg
	OpSin
	OpCos
	OpTan
	OpExp
	OpLn
	OpSqrt
	OpAbs
	OpSimplify
	OpFactor
	OpExpand
	OpDiff
	OpIntegrate
	OpSubst

	numOps // keep last
)

// opInfo carries the GIAC command name, the shim symbol and the arity of a
// typed entry point.
type opInfo struct {
	name   string
	symbol string
	arity  int
}

var ops = [numOps]opInfo{
	OpAdd:       {"+", "giac_add", 2},
	OpSub:       {"-", "giac_sub", 2},
	OpMul:       {"*", "giac_mul", 2},
	OpDiv:       {"/", "giac_div", 2},
	OpPow:       {"^", "giac_pow", 2},
	OpNeg:       {"neg", "giac_neg", 1},
	OpSin:       {"sin", "giac_sin", 1},
	OpCos:       {"cos", "giac_cos", 1},
	OpTan:       {"tan", "giac_tan", 1},
	OpExp:       {"exp", "giac_exp", 1},
	OpLn:        {"ln", "giac_ln", 1},
	OpSqrt:      {"sqrt", "giac_sqrt", 1},
	OpAbs:       {"abs", "giac_abs", 1},
	OpSimplify:  {"simplify", "giac_simplify", 1},
	OpFactor:    {"factor", "giac_factor", 1},
	OpExpand:    {"expand", "giac_expand", 1},
	OpDiff:      {"diff", "giac_diff", 2},
	OpIntegrate: {"integrate", "giac_integrate", 2},
	OpSubst:     {"subst", "giac_subst", 3},
}

// Name returns the GIAC command name of the operation.
func (op Op) Name() string {
	if op < 0 || op >= numOps {
		return ""
	}
	return ops[op].name
}

// Arity returns the argument count of the typed entry point.
func (op Op) Arity() int {
	if op < 0 || op >= numOps {
		return 0
	}
	return ops[op].arity
}

// symbol returns the shim symbol name for dlsym.
func (op Op) symbol() string {
	if op < 0 || op >= numOps {
		return ""
	}
	return ops[op].symbol
}

// TypedOps returns every operation that has a typed entry point, in a
// stable order. Used by the dispatcher to build its tier-1 table.
func TypedOps() []Op {
	out := make([]Op, 0, int(numOps))
	for op := Op(0); op < numOps; op++ {
		out = append(out, op)
	}
	return out
}
