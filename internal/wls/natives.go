package wls

import (
	"sort"
	"strings"

	"github.com/unkn0wn-root/walle/internal/canvas"
)

type NativeFunc func(tok Tok, args []Value) (Value, error)

// Native is a builtin with a fixed arity. Builtins read canvas state and
// never change it.
type Native struct {
	Name  string
	Arity int
	Fn    NativeFunc
}

// BuiltinNames lists the builtin functions in canonical spelling, sorted.
func BuiltinNames() []string {
	natives := Natives(nil)
	out := make([]string, 0, len(natives))
	for _, n := range natives {
		out = append(out, n.Name)
	}
	sort.Strings(out)
	return out
}

// Natives returns the builtins bound to cv, keyed by lower-cased name.
func Natives(cv *canvas.Canvas) map[string]Native {
	list := []Native{
		{Name: "GetActualX", Arity: 0, Fn: func(tok Tok, args []Value) (Value, error) {
			if err := newNativeArgs(tok, args, "GetActualX()").count(0); err != nil {
				return Value{}, err
			}
			x, _ := cv.Cursor()
			return Int(x), nil
		}},
		{Name: "GetActualY", Arity: 0, Fn: func(tok Tok, args []Value) (Value, error) {
			if err := newNativeArgs(tok, args, "GetActualY()").count(0); err != nil {
				return Value{}, err
			}
			_, y := cv.Cursor()
			return Int(y), nil
		}},
		{Name: "GetCanvasSize", Arity: 0, Fn: func(tok Tok, args []Value) (Value, error) {
			if err := newNativeArgs(tok, args, "GetCanvasSize()").count(0); err != nil {
				return Value{}, err
			}
			return Int(cv.Size()), nil
		}},
		{Name: "GetColorCount", Arity: 5, Fn: func(tok Tok, args []Value) (Value, error) {
			return colorCount(cv, tok, args)
		}},
		{Name: "IsBrushColor", Arity: 1, Fn: func(tok Tok, args []Value) (Value, error) {
			na := newNativeArgs(tok, args, "IsBrushColor(color)")
			if err := na.count(1); err != nil {
				return Value{}, err
			}
			c, err := na.color(0)
			if err != nil {
				return Value{}, err
			}
			return flag(cv.BrushColor() == c), nil
		}},
		{Name: "IsBrushSize", Arity: 1, Fn: func(tok Tok, args []Value) (Value, error) {
			na := newNativeArgs(tok, args, "IsBrushSize(size)")
			if err := na.count(1); err != nil {
				return Value{}, err
			}
			n, err := na.num(0)
			if err != nil {
				return Value{}, err
			}
			return flag(cv.BrushSize() == n), nil
		}},
		{Name: "IsCanvasColor", Arity: 3, Fn: func(tok Tok, args []Value) (Value, error) {
			return canvasColor(cv, tok, args)
		}},
	}

	out := make(map[string]Native, len(list))
	for _, n := range list {
		out[strings.ToLower(n.Name)] = n
	}
	return out
}

// colorCount backs GetColorCount(color, x1, x2, y1, y2).
func colorCount(cv *canvas.Canvas, tok Tok, args []Value) (Value, error) {
	na := newNativeArgs(tok, args, "GetColorCount(color, x1, x2, y1, y2)")
	if err := na.count(5); err != nil {
		return Value{}, err
	}
	c, err := na.color(0)
	if err != nil {
		return Value{}, err
	}
	var n [4]int
	for i := range n {
		v, err := na.num(i + 1)
		if err != nil {
			return Value{}, err
		}
		n[i] = v
	}
	return Int(cv.CountColor(c, n[0], n[1], n[2], n[3])), nil
}

// canvasColor backs IsCanvasColor(color, vertical, horizontal). The offsets
// are relative to the cursor.
func canvasColor(cv *canvas.Canvas, tok Tok, args []Value) (Value, error) {
	na := newNativeArgs(tok, args, "IsCanvasColor(color, vertical, horizontal)")
	if err := na.count(3); err != nil {
		return Value{}, err
	}
	c, err := na.color(0)
	if err != nil {
		return Value{}, err
	}
	dv, err := na.num(1)
	if err != nil {
		return Value{}, err
	}
	dh, err := na.num(2)
	if err != nil {
		return Value{}, err
	}
	x, y := cv.Cursor()
	got, ok := cv.At(x+dh, y+dv)
	return flag(ok && got == c), nil
}

func flag(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}
