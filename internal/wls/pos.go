package wls

import "fmt"

type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// SyntaxError is reported by the lexer and parser. Many may accumulate for a
// single source; any of them prevents execution.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error at line %d: %s", e.Line, e.Msg)
}

// RuntimeError halts a run. Tok is the token the failure is attributed to.
type RuntimeError struct {
	Tok Tok
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Error at Line:%d: %s", e.Tok.P.Line, e.Msg)
}

func (e *RuntimeError) Line() int { return e.Tok.P.Line }

func synErr(line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func rtErr(tok Tok, format string, args ...any) error {
	return &RuntimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}
