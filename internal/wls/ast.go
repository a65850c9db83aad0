package wls

// Program is a flat statement list. Control flow is index based.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Stmts)
}

type Stmt interface {
	stmtNode()
	Token() Tok
}

type Expr interface {
	exprNode()
	Token() Tok
}

type LabelStmt struct {
	Tok  Tok
	Name string
}

func (*LabelStmt) stmtNode()    {}
func (s *LabelStmt) Token() Tok { return s.Tok }

type GoToStmt struct {
	Kw    Tok
	Label Tok
	Cond  Expr
}

func (*GoToStmt) stmtNode()    {}
func (s *GoToStmt) Token() Tok { return s.Kw }

type VarDecl struct {
	Name Tok
	Val  Expr
}

func (*VarDecl) stmtNode()    {}
func (s *VarDecl) Token() Tok { return s.Name }

type ExprStmt struct {
	Exp Expr
}

func (*ExprStmt) stmtNode()    {}
func (s *ExprStmt) Token() Tok { return s.Exp.Token() }

type SpawnStmt struct {
	Kw   Tok
	X, Y Expr
}

func (*SpawnStmt) stmtNode()    {}
func (s *SpawnStmt) Token() Tok { return s.Kw }

type ColorStmt struct {
	Kw    Tok
	Color Expr
}

func (*ColorStmt) stmtNode()    {}
func (s *ColorStmt) Token() Tok { return s.Kw }

type SizeStmt struct {
	Kw Tok
	N  Expr
}

func (*SizeStmt) stmtNode()    {}
func (s *SizeStmt) Token() Tok { return s.Kw }

type DrawLineStmt struct {
	Kw     Tok
	DX, DY Expr
	Dist   Expr
}

func (*DrawLineStmt) stmtNode()    {}
func (s *DrawLineStmt) Token() Tok { return s.Kw }

type DrawCircleStmt struct {
	Kw     Tok
	DX, DY Expr
	Radius Expr
}

func (*DrawCircleStmt) stmtNode()    {}
func (s *DrawCircleStmt) Token() Tok { return s.Kw }

type DrawRectangleStmt struct {
	Kw     Tok
	DX, DY Expr
	Dist   Expr
	W, H   Expr
}

func (*DrawRectangleStmt) stmtNode()    {}
func (s *DrawRectangleStmt) Token() Tok { return s.Kw }

type FillStmt struct {
	Kw Tok
}

func (*FillStmt) stmtNode()    {}
func (s *FillStmt) Token() Tok { return s.Kw }

type Binary struct {
	Op    Tok
	Left  Expr
	Right Expr
}

func (*Binary) exprNode()    {}
func (e *Binary) Token() Tok { return e.Op }

type Unary struct {
	Op Tok
	X  Expr
}

func (*Unary) exprNode()    {}
func (e *Unary) Token() Tok { return e.Op }

type Literal struct {
	Tok Tok
	V   Value
}

func (*Literal) exprNode()    {}
func (e *Literal) Token() Tok { return e.Tok }

type Grouping struct {
	Paren Tok
	Inner Expr
}

func (*Grouping) exprNode()    {}
func (e *Grouping) Token() Tok { return e.Paren }

type Variable struct {
	Name Tok
}

func (*Variable) exprNode()    {}
func (e *Variable) Token() Tok { return e.Name }

type Call struct {
	Name Tok
	Args []Expr
}

func (*Call) exprNode()    {}
func (e *Call) Token() Tok { return e.Name }
