package wls

import "strconv"

type VKind int

const (
	VNone VKind = iota
	VInt
	VBool
	VStr
)

func (k VKind) String() string {
	switch k {
	case VInt:
		return "int"
	case VBool:
		return "bool"
	case VStr:
		return "string"
	default:
		return "none"
	}
}

// Value is a runtime value. Color names travel as VStr; builtins only ever
// produce VInt or VBool.
type Value struct {
	K VKind

	I int
	B bool
	S string
}

func Int(v int) Value    { return Value{K: VInt, I: v} }
func Bool(v bool) Value  { return Value{K: VBool, B: v} }
func Str(v string) Value { return Value{K: VStr, S: v} }

func (v Value) String() string {
	switch v.K {
	case VInt:
		return strconv.Itoa(v.I)
	case VBool:
		return strconv.FormatBool(v.B)
	case VStr:
		return strconv.Quote(v.S)
	default:
		return "<none>"
	}
}

// ValueEqual never fails: values of different kinds are simply unequal.
func ValueEqual(a, b Value) bool {
	if a.K != b.K {
		return false
	}
	switch a.K {
	case VInt:
		return a.I == b.I
	case VBool:
		return a.B == b.B
	case VStr:
		return a.S == b.S
	default:
		return true
	}
}
