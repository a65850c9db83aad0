package wls

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/unkn0wn-root/walle/internal/canvas"
)

// Limits bounds a run. The zero value means unlimited.
type Limits struct {
	MaxSteps int
	Timeout  time.Duration
}

type Option func(*Interp)

func WithLimits(lim Limits) Option {
	return func(in *Interp) { in.lim = lim }
}

func WithClock(now func() time.Time) Option {
	return func(in *Interp) {
		if now != nil {
			in.now = now
		}
	}
}

// Interp executes one program against one canvas. The instruction pointer
// indexes the flat statement list; a taken GoTo sets it directly.
type Interp struct {
	cv      *canvas.Canvas
	env     *Env
	labels  *LabelTable
	natives map[string]Native
	lim     Limits
	now     func() time.Time

	ip    int
	steps int
}

func NewInterp(cv *canvas.Canvas, opts ...Option) *Interp {
	in := &Interp{
		cv:      cv,
		env:     NewEnv(),
		labels:  NewLabelTable(),
		natives: Natives(cv),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (in *Interp) Env() *Env { return in.env }

// Steps reports how many statements have been executed.
func (in *Interp) Steps() int { return in.steps }

// Run stops at the first runtime error and returns it.
func (in *Interp) Run(ctx context.Context, prog *Program) error {
	if ctx == nil {
		ctx = context.Background()
	}
	labels, err := BuildLabels(prog)
	if err != nil {
		return err
	}
	in.labels = labels

	start := in.now()
	in.ip = 0
	for in.ip < prog.Len() {
		st := prog.Stmts[in.ip]
		if err := in.tick(ctx, st.Token(), start); err != nil {
			return err
		}
		jumped, err := in.exec(st)
		if err != nil {
			return err
		}
		if !jumped {
			in.ip++
		}
	}
	return nil
}

func (in *Interp) tick(ctx context.Context, at Tok, start time.Time) error {
	in.steps++
	if in.lim.MaxSteps > 0 && in.steps > in.lim.MaxSteps {
		return rtErr(at, "Step limit exceeded: %d", in.lim.MaxSteps)
	}
	if in.lim.Timeout > 0 && in.now().Sub(start) > in.lim.Timeout {
		return rtErr(at, "Timeout exceeded: %s", in.lim.Timeout)
	}
	select {
	case <-ctx.Done():
		return rtErr(at, "Canceled: %v", ctx.Err())
	default:
		return nil
	}
}

// exec reports whether the statement moved the instruction pointer itself.
func (in *Interp) exec(st Stmt) (bool, error) {
	switch s := st.(type) {
	case *LabelStmt:
		return false, nil
	case *GoToStmt:
		c, err := in.eval(s.Cond)
		if err != nil {
			return false, err
		}
		if c.K != VBool {
			return false, rtErr(s.Kw, "Invalid condition, expected bool for GoTo")
		}
		if !c.B {
			return false, nil
		}
		idx, err := in.labels.Lookup(s.Label.Lit, s.Kw)
		if err != nil {
			return false, err
		}
		in.ip = idx
		return true, nil
	case *VarDecl:
		v, err := in.eval(s.Val)
		if err != nil {
			return false, err
		}
		in.env.Set(s.Name.Lit, v)
		return false, nil
	case *ExprStmt:
		_, err := in.eval(s.Exp)
		return false, err
	case *SpawnStmt:
		xy, err := in.ints(s.Kw, "Spawn", s.X, s.Y)
		if err != nil {
			return false, err
		}
		if err := in.cv.Spawn(xy[0], xy[1]); err != nil {
			return false, rtErr(s.Kw, "Coordinates out of canvas: (%d,%d)", xy[0], xy[1])
		}
		return false, nil
	case *ColorStmt:
		v, err := in.eval(s.Color)
		if err != nil {
			return false, err
		}
		if v.K != VStr {
			return false, rtErr(s.Kw, "Expected color string parameter for Color")
		}
		if err := in.cv.SetColor(v.S); err != nil {
			return false, rtErr(s.Kw, "Invalid color, %s not found", v.S)
		}
		return false, nil
	case *SizeStmt:
		v, err := in.eval(s.N)
		if err != nil {
			return false, err
		}
		if v.K != VInt {
			return false, rtErr(s.Kw, "Expected int parameter for Size")
		}
		in.cv.SetSize(v.I)
		return false, nil
	case *DrawLineStmt:
		a, err := in.ints(s.Kw, "DrawLine", s.DX, s.DY, s.Dist)
		if err != nil {
			return false, err
		}
		return false, canvasErr(s.Kw, in.cv.DrawLine(a[0], a[1], a[2]))
	case *DrawCircleStmt:
		a, err := in.ints(s.Kw, "DrawCircle", s.DX, s.DY, s.Radius)
		if err != nil {
			return false, err
		}
		return false, canvasErr(s.Kw, in.cv.DrawCircle(a[0], a[1], a[2]))
	case *DrawRectangleStmt:
		a, err := in.ints(s.Kw, "DrawRectangle", s.DX, s.DY, s.Dist, s.W, s.H)
		if err != nil {
			return false, err
		}
		return false, canvasErr(s.Kw, in.cv.DrawRectangle(a[0], a[1], a[2], a[3], a[4]))
	case *FillStmt:
		in.cv.Fill()
		return false, nil
	default:
		return false, rtErr(st.Token(), "Unknown statement")
	}
}

// ints evaluates every expression and requires each to be an integer.
func (in *Interp) ints(kw Tok, name string, exprs ...Expr) ([]int, error) {
	out := make([]int, 0, len(exprs))
	for _, ex := range exprs {
		v, err := in.eval(ex)
		if err != nil {
			return nil, err
		}
		if v.K != VInt {
			return nil, rtErr(kw, "Expected int parameters for %s", name)
		}
		out = append(out, v.I)
	}
	return out, nil
}

func canvasErr(kw Tok, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, canvas.ErrInvalidDirection):
		return rtErr(kw, "Invalid directions")
	default:
		return rtErr(kw, "%v", err)
	}
}

func (in *Interp) eval(ex Expr) (Value, error) {
	switch e := ex.(type) {
	case *Literal:
		return e.V, nil
	case *Grouping:
		return in.eval(e.Inner)
	case *Variable:
		v, ok := in.env.Get(e.Name.Lit)
		if !ok {
			return Value{}, rtErr(e.Name, "Variable not found: %s", e.Name.Lit)
		}
		return v, nil
	case *Unary:
		x, err := in.eval(e.X)
		if err != nil {
			return Value{}, err
		}
		switch e.Op.K {
		case MINUS:
			if x.K != VInt {
				return Value{}, rtErr(e.Op, "Integer operand required")
			}
			return Int(-x.I), nil
		case NOT:
			if x.K != VBool {
				return Value{}, rtErr(e.Op, "Boolean operand required")
			}
			return Bool(!x.B), nil
		}
		return Value{}, rtErr(e.Op, "Unknown operator")
	case *Binary:
		return in.evalBin(e)
	case *Call:
		return in.evalCall(e)
	default:
		return Value{}, rtErr(ex.Token(), "Unknown expression")
	}
}

func (in *Interp) evalBin(e *Binary) (Value, error) {
	l, err := in.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	r, err := in.eval(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Op.K {
	case EQ:
		return Bool(ValueEqual(l, r)), nil
	case NE:
		return Bool(!ValueEqual(l, r)), nil
	case AND, OR:
		if l.K != VBool || r.K != VBool {
			return Value{}, rtErr(e.Op, "Operation requires boolean operands")
		}
		if e.Op.K == AND {
			return Bool(l.B && r.B), nil
		}
		return Bool(l.B || r.B), nil
	}

	if l.K != VInt || r.K != VInt {
		return Value{}, rtErr(e.Op, "Operation requires integer operands")
	}
	a, b := l.I, r.I
	switch e.Op.K {
	case PLUS:
		return Int(a + b), nil
	case MINUS:
		return Int(a - b), nil
	case STAR:
		return Int(a * b), nil
	case SLASH:
		if b == 0 {
			return Value{}, rtErr(e.Op, "Division by zero is not allowed")
		}
		return Int(a / b), nil
	case PERCENT:
		if b == 0 {
			return Value{}, rtErr(e.Op, "Modulo by zero is not allowed")
		}
		return Int(a % b), nil
	case POW:
		return pow(e.Op, a, b)
	case LT:
		return Bool(a < b), nil
	case LE:
		return Bool(a <= b), nil
	case GT:
		return Bool(a > b), nil
	case GE:
		return Bool(a >= b), nil
	}
	return Value{}, rtErr(e.Op, "Unknown operator")
}

func pow(op Tok, base, exp int) (Value, error) {
	if exp < 0 {
		return Value{}, rtErr(op, "Negative exponents are not supported")
	}
	if base == 0 && exp == 0 {
		return Value{}, rtErr(op, "0^0 is not defined")
	}
	switch base {
	case 0, 1:
		return Int(base), nil
	case -1:
		if exp%2 == 0 {
			return Int(1), nil
		}
		return Int(-1), nil
	}
	out := 1
	for range exp {
		next, ok := mulChecked(out, base)
		if !ok {
			return Value{}, rtErr(op, "Integer overflow")
		}
		out = next
	}
	return Int(out), nil
}

func mulChecked(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

func (in *Interp) evalCall(e *Call) (Value, error) {
	fn, ok := in.natives[strings.ToLower(e.Name.Lit)]
	if !ok {
		return Value{}, rtErr(e.Name, "Function: %s not found", e.Name.Lit)
	}
	if len(e.Args) != fn.Arity {
		return Value{}, rtErr(e.Name, "Invalid amount of args, required arguments: %d", fn.Arity)
	}
	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}
	return fn.Fn(e.Name, args)
}
