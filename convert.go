package giac

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// serializeArg renders a Go value in GIAC's textual call syntax. This is
// the tier-3 argument encoding; unsupported types are rejected here,
// before any native call is attempted.
//
// Forms:
//
//	*Gen        → its native serialization
//	string      → verbatim
//	integers    → decimal
//	floats      → shortest round-trip decimal
//	*big.Rat    → (num)/(den)
//	complex     → (re)+(im)*i
//	bool        → true / false
//	slice/array → [e1,e2,...] with elements serialized recursively
func (c *Context) serializeArg(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", newError(KindType, "serialize", "cannot serialize nil argument")
	case *Gen:
		return val.text("serialize")
	case string:
		return val, nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case *big.Int:
		return val.String(), nil
	case *big.Rat:
		return "(" + val.Num().String() + ")/(" + val.Denom().String() + ")", nil
	case complex64:
		return serializeComplex(float64(real(val)), float64(imag(val)), 32), nil
	case complex128:
		return serializeComplex(real(val), imag(val), 64), nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := c.serializeArg(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ",") + "]", nil
	}
	return "", newError(KindType, "serialize", "cannot serialize %T argument", v)
}

func serializeComplex(re, im float64, bits int) string {
	return "(" + strconv.FormatFloat(re, 'g', -1, bits) + ")+(" +
		strconv.FormatFloat(im, 'g', -1, bits) + ")*i"
}

// buildCall renders name(arg1,arg2,...) for the tier-3 string evaluator.
func (c *Context) buildCall(name string, args []any) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		s, err := c.serializeArg(arg)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return name + "(" + strings.Join(parts, ",") + ")", nil
}
