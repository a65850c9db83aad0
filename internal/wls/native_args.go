package wls

import "github.com/unkn0wn-root/walle/internal/canvas"

type nativeArgs struct {
	tok  Tok
	args []Value
	sig  string
}

func newNativeArgs(tok Tok, args []Value, sig string) nativeArgs {
	return nativeArgs{tok: tok, args: args, sig: sig}
}

func (a nativeArgs) count(want int) error {
	if len(a.args) != want {
		return rtErr(a.tok, "%s expects %d args", a.sig, want)
	}
	return nil
}

func (a nativeArgs) num(i int) (int, error) {
	v := a.args[i]
	if v.K != VInt {
		return 0, rtErr(a.tok, "%s expects int for argument %d", a.sig, i+1)
	}
	return v.I, nil
}

func (a nativeArgs) color(i int) (canvas.Color, error) {
	v := a.args[i]
	if v.K != VStr {
		return 0, rtErr(a.tok, "%s expects color name for argument %d", a.sig, i+1)
	}
	c, ok := canvas.ParseColor(v.S)
	if !ok {
		return 0, rtErr(a.tok, "Invalid color, %s not found", v.S)
	}
	return c, nil
}
