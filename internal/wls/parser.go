package wls

type Parser struct {
	ts      *TokenStream
	errs    []*SyntaxError
	started bool
	spawned bool
}

func NewParser(toks []Tok) *Parser {
	return &Parser{ts: NewTokenStream(toks)}
}

// Parse lexes and parses src. Lexical errors come first, then syntax errors,
// each in source order. A line that already failed to lex reports nothing
// more. The program is usable only when no errors are returned.
func Parse(src string) (*Program, []*SyntaxError) {
	toks, lexErrs := Lex(src)
	prog, parseErrs := ParseTokens(toks)
	bad := make(map[int]bool, len(lexErrs))
	for _, e := range lexErrs {
		bad[e.Line] = true
	}
	errs := make([]*SyntaxError, 0, len(lexErrs)+len(parseErrs))
	errs = append(errs, lexErrs...)
	for _, e := range parseErrs {
		if !bad[e.Line] {
			errs = append(errs, e)
		}
	}
	return prog, errs
}

func ParseTokens(toks []Tok) (*Program, []*SyntaxError) {
	p := NewParser(toks)
	prog := p.ParseProgram()
	return prog, p.errs
}

// ParseProgram never panics. A failed statement is recorded and the parser
// skips to the next line before carrying on.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for !p.ts.AtEnd() {
		if p.ts.Match(EOL) {
			continue
		}
		st, ok := p.tryStmt()
		if !ok {
			p.synchronize()
			continue
		}
		prog.Stmts = append(prog.Stmts, st)
	}
	return prog
}

func (p *Parser) Errors() []*SyntaxError {
	return p.errs
}

func (p *Parser) tryStmt() (st Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if se, isSyn := r.(*SyntaxError); isSyn {
				p.errs = append(p.errs, se)
				st, ok = nil, false
				return
			}
			panic(r)
		}
	}()
	return p.parseStmt(), true
}

func (p *Parser) synchronize() {
	for !p.ts.AtEnd() {
		if p.ts.Next().K == EOL {
			return
		}
	}
}

func (p *Parser) parseStmt() Stmt {
	cur := p.ts.Current()
	first := !p.started
	p.started = true
	if cur.K == KW_SPAWN {
		if p.spawned {
			p.fail(cur, "Spawn can only be used once")
		}
		p.spawned = true
	} else if first {
		// Keep going so later lines still get checked.
		p.errs = append(p.errs, synErr(cur.P.Line, "Program must start with Spawn"))
	}

	switch cur.K {
	case KW_SPAWN:
		return p.parseSpawn()
	case KW_COLOR:
		return p.parseColor()
	case KW_SIZE:
		return p.parseSize()
	case KW_DRAWLINE:
		return p.parseDrawLine()
	case KW_DRAWCIRCLE:
		return p.parseDrawCircle()
	case KW_DRAWRECTANGLE:
		return p.parseDrawRectangle()
	case KW_FILL:
		return p.parseFill()
	case KW_GOTO:
		return p.parseGoTo()
	case IDENT:
		switch p.ts.Peek(1).K {
		case EOL, EOF:
			return p.parseLabel()
		case ASSIGN:
			return p.parseVarDecl()
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseSpawn() Stmt {
	kw := p.ts.Next()
	p.expect(LPAREN, "Expected (")
	x := p.parseExpr()
	p.expect(COMMA, "Expected ,")
	y := p.parseExpr()
	p.expect(RPAREN, "Expected )")
	p.endStmt()
	return &SpawnStmt{Kw: kw, X: x, Y: y}
}

func (p *Parser) parseColor() Stmt {
	kw := p.ts.Next()
	p.expect(LPAREN, "Expected (")
	c := p.parseExpr()
	p.expect(RPAREN, "Expected )")
	p.endStmt()
	return &ColorStmt{Kw: kw, Color: c}
}

func (p *Parser) parseSize() Stmt {
	kw := p.ts.Next()
	p.expect(LPAREN, "Expected (")
	n := p.parseExpr()
	p.expect(RPAREN, "Expected )")
	p.endStmt()
	return &SizeStmt{Kw: kw, N: n}
}

func (p *Parser) parseDrawLine() Stmt {
	kw := p.ts.Next()
	args := p.parseStmtArgs(3)
	return &DrawLineStmt{Kw: kw, DX: args[0], DY: args[1], Dist: args[2]}
}

func (p *Parser) parseDrawCircle() Stmt {
	kw := p.ts.Next()
	args := p.parseStmtArgs(3)
	return &DrawCircleStmt{Kw: kw, DX: args[0], DY: args[1], Radius: args[2]}
}

func (p *Parser) parseDrawRectangle() Stmt {
	kw := p.ts.Next()
	args := p.parseStmtArgs(5)
	return &DrawRectangleStmt{Kw: kw, DX: args[0], DY: args[1], Dist: args[2], W: args[3], H: args[4]}
}

func (p *Parser) parseFill() Stmt {
	kw := p.ts.Next()
	p.expect(LPAREN, "Expected (")
	p.expect(RPAREN, "Expected )")
	p.endStmt()
	return &FillStmt{Kw: kw}
}

// parseStmtArgs reads exactly n comma-separated arguments in parentheses
// followed by the end of the line.
func (p *Parser) parseStmtArgs(n int) []Expr {
	p.expect(LPAREN, "Expected (")
	out := make([]Expr, 0, n)
	for i := range n {
		if i > 0 {
			p.expect(COMMA, "Expected ,")
		}
		out = append(out, p.parseExpr())
	}
	p.expect(RPAREN, "Expected )")
	p.endStmt()
	return out
}

func (p *Parser) parseGoTo() Stmt {
	kw := p.ts.Next()
	p.expect(LBRACK, "Expected [")
	label := p.expect(IDENT, "Expected label")
	p.expect(RBRACK, "Expected ]")
	p.expect(LPAREN, "Expected (")
	cond := p.parseExpr()
	p.expect(RPAREN, "Expected )")
	p.endStmt()
	return &GoToStmt{Kw: kw, Label: label, Cond: cond}
}

func (p *Parser) parseLabel() Stmt {
	tok := p.ts.Next()
	p.endStmt()
	return &LabelStmt{Tok: tok, Name: tok.Lit}
}

func (p *Parser) parseVarDecl() Stmt {
	name := p.ts.Next()
	p.ts.Next()
	val := p.parseExpr()
	p.endStmt()
	return &VarDecl{Name: name, Val: val}
}

func (p *Parser) parseExprStmt() Stmt {
	ex := p.parseExpr()
	p.endStmt()
	return &ExprStmt{Exp: ex}
}

func (p *Parser) parseExpr() Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() Expr {
	left := p.parseAnd()
	for p.ts.Match(OR) {
		op := p.ts.Previous()
		right := p.parseAnd()
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() Expr {
	left := p.parseEq()
	for p.ts.Match(AND) {
		op := p.ts.Previous()
		right := p.parseEq()
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEq() Expr {
	left := p.parseCmp()
	for p.ts.Match(EQ, NE) {
		op := p.ts.Previous()
		right := p.parseCmp()
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseCmp() Expr {
	left := p.parseAdd()
	for p.ts.Match(LT, LE, GT, GE) {
		op := p.ts.Previous()
		right := p.parseAdd()
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdd() Expr {
	left := p.parseMul()
	for p.ts.Match(PLUS, MINUS) {
		op := p.ts.Previous()
		right := p.parseMul()
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMul() Expr {
	left := p.parseUnary()
	for p.ts.Match(STAR, SLASH, PERCENT, POW) {
		op := p.ts.Previous()
		right := p.parseUnary()
		left = &Binary{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() Expr {
	if p.ts.Match(MINUS, NOT) {
		op := p.ts.Previous()
		x := p.parseUnary()
		return &Unary{Op: op, X: x}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() Expr {
	ex := p.parsePrimary()
	if p.ts.Current().K != LPAREN {
		return ex
	}
	p.ts.Next()
	args := p.parseArgs()
	v, ok := ex.(*Variable)
	if !ok {
		p.fail(p.ts.Current(), "Invalid function call")
	}
	return &Call{Name: v.Name, Args: args}
}

func (p *Parser) parseArgs() []Expr {
	var out []Expr
	if p.ts.Match(RPAREN) {
		return out
	}
	for {
		out = append(out, p.parseExpr())
		if !p.ts.Match(COMMA) {
			break
		}
	}
	p.expect(RPAREN, "Expected ) after arguments")
	return out
}

func (p *Parser) parsePrimary() Expr {
	cur := p.ts.Current()
	switch cur.K {
	case NUMBER, STRING, KW_TRUE, KW_FALSE:
		p.ts.Next()
		return &Literal{Tok: cur, V: cur.Val}
	case IDENT:
		p.ts.Next()
		return &Variable{Name: cur}
	case LPAREN:
		p.ts.Next()
		inner := p.parseExpr()
		p.expect(RPAREN, "Expected )")
		return &Grouping{Paren: cur, Inner: inner}
	}
	p.fail(cur, "Expected expression")
	return nil
}

func (p *Parser) endStmt() {
	switch p.ts.Current().K {
	case EOL:
		p.ts.Next()
	case EOF:
	default:
		p.fail(p.ts.Current(), "Expected end of line")
	}
}

func (p *Parser) expect(k Kind, msg string) Tok {
	if p.ts.Current().K != k {
		p.fail(p.ts.Current(), msg)
	}
	return p.ts.Next()
}

func (p *Parser) fail(at Tok, msg string) {
	panic(synErr(at.P.Line, "%s", msg))
}
