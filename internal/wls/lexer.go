package wls

import (
	"bytes"
	"strconv"
	"unicode/utf8"
)

// Lexer produces tokens on demand. It never fails: malformed input is
// recorded in Errors and scanning resumes after it.
type Lexer struct {
	src  []byte
	i    int
	line int
	col  int
	eof  bool
	errs []*SyntaxError
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []byte(src), line: 1, col: 1}
}

// Reset rewinds to the start of the source and forgets earlier errors.
func (l *Lexer) Reset() {
	l.i = 0
	l.line = 1
	l.col = 1
	l.eof = false
	l.errs = nil
}

func (l *Lexer) Errors() []*SyntaxError {
	return l.errs
}

// Lex scans src to completion. The returned slice always ends with EOF.
func Lex(src string) ([]Tok, []*SyntaxError) {
	lx := NewLexer(src)
	var out []Tok
	for {
		t := lx.Next()
		out = append(out, t)
		if t.K == EOF {
			return out, lx.Errors()
		}
	}
}

func (l *Lexer) Next() Tok {
	for {
		if l.eof || l.i >= len(l.src) {
			l.eof = true
			return Tok{K: EOF, Lit: "EOF", P: l.pos()}
		}

		ch := l.src[l.i]
		if isSpace(ch) {
			l.read()
			continue
		}

		p := l.pos()
		if ch == '\n' || ch == '\r' {
			l.read()
			return Tok{K: EOL, P: p}
		}

		if ch == '"' {
			s, ok := l.scanString()
			if !ok {
				l.fail(p, "Unterminated string")
				continue
			}
			return Tok{K: STRING, Lit: s, P: p, Val: Str(s)}
		}

		if isDigit(ch) || (ch == '-' && isDigit(l.at(1))) {
			if t, ok := l.scanNumber(p); ok {
				return t
			}
			continue
		}

		if isIdentStart(ch) {
			name := l.scanIdent()
			if k, ok := lookupKeyword(name); ok {
				t := Tok{K: k, Lit: name, P: p}
				switch k {
				case KW_TRUE:
					t.Val = Bool(true)
				case KW_FALSE:
					t.Val = Bool(false)
				}
				return t
			}
			return Tok{K: IDENT, Lit: name, P: p}
		}

		if t, ok := l.scanOp(p); ok {
			return t
		}

		r, _ := utf8.DecodeRune(l.src[l.i:])
		l.skipRune()
		l.fail(p, "Unexpected character: %c", r)
	}
}

func (l *Lexer) pos() Pos {
	return Pos{Line: l.line, Col: l.col}
}

func (l *Lexer) fail(p Pos, format string, args ...any) {
	l.errs = append(l.errs, synErr(p.Line, format, args...))
}

func (l *Lexer) at(off int) byte {
	if l.i+off >= len(l.src) {
		return 0
	}
	return l.src[l.i+off]
}

func (l *Lexer) read() byte {
	if l.i >= len(l.src) {
		return 0
	}
	b := l.src[l.i]
	l.i++
	if b == '\r' {
		if l.i < len(l.src) && l.src[l.i] == '\n' {
			l.i++
		}
		l.line++
		l.col = 1
		return '\n'
	}
	if b == '\n' {
		l.line++
		l.col = 1
		return '\n'
	}
	l.col++
	return b
}

func (l *Lexer) skipRune() {
	_, n := utf8.DecodeRune(l.src[l.i:])
	l.i += n
	l.col++
}

func (l *Lexer) scanIdent() string {
	start := l.i
	l.read()
	for isIdent(l.at(0)) {
		l.read()
	}
	return string(l.src[start:l.i])
}

// scanNumber matches -?digits. Digits running straight into letters are
// consumed as one malformed lexeme.
func (l *Lexer) scanNumber(p Pos) (Tok, bool) {
	start := l.i
	if l.at(0) == '-' {
		l.read()
	}
	for isDigit(l.at(0)) {
		l.read()
	}
	if isIdentStart(l.at(0)) {
		for isIdent(l.at(0)) {
			l.read()
		}
		l.fail(p, "Invalid number: %s", l.src[start:l.i])
		return Tok{}, false
	}

	lit := string(l.src[start:l.i])
	n, err := strconv.Atoi(lit)
	if err != nil {
		l.fail(p, "Invalid number format: %s", lit)
		return Tok{}, false
	}
	return Tok{K: NUMBER, Lit: lit, P: p, Val: Int(n)}, true
}

// scanString reads a double-quoted literal. Strings may not span lines; on
// failure the rest of the line is dropped and the newline is left in place.
func (l *Lexer) scanString() (string, bool) {
	l.read()
	start := l.i
	for {
		ch := l.at(0)
		if l.i >= len(l.src) || ch == '\n' || ch == '\r' {
			return "", false
		}
		if ch == '"' {
			s := string(l.src[start:l.i])
			l.read()
			return s, true
		}
		l.read()
	}
}

func (l *Lexer) scanOp(p Pos) (Tok, bool) {
	rest := l.src[l.i:]
	for _, op := range ops {
		if bytes.HasPrefix(rest, []byte(op.lit)) {
			for range len(op.lit) {
				l.read()
			}
			return Tok{K: op.k, Lit: op.lit, P: p}, true
		}
	}
	return Tok{}, false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdent(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
