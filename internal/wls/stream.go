package wls

// TokenStream is a cursor over a lexed token slice. The slice must end with
// EOF; reads past the end keep returning it.
type TokenStream struct {
	toks []Tok
	i    int
}

func NewTokenStream(toks []Tok) *TokenStream {
	if len(toks) == 0 || toks[len(toks)-1].K != EOF {
		line := 1
		if len(toks) > 0 {
			line = toks[len(toks)-1].P.Line
		}
		toks = append(toks, Tok{K: EOF, Lit: "EOF", P: Pos{Line: line, Col: 1}})
	}
	return &TokenStream{toks: toks}
}

func (s *TokenStream) Current() Tok {
	return s.Peek(0)
}

// Peek looks n tokens ahead of the current one.
func (s *TokenStream) Peek(n int) Tok {
	i := s.i + n
	if i >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	if i < 0 {
		return s.toks[0]
	}
	return s.toks[i]
}

func (s *TokenStream) Previous() Tok {
	return s.Peek(-1)
}

// Next returns the current token and advances past it.
func (s *TokenStream) Next() Tok {
	t := s.Current()
	if s.i < len(s.toks)-1 {
		s.i++
	}
	return t
}

// Match advances when the current token has one of the given kinds.
func (s *TokenStream) Match(kinds ...Kind) bool {
	cur := s.Current().K
	for _, k := range kinds {
		if cur == k {
			s.Next()
			return true
		}
	}
	return false
}

func (s *TokenStream) AtEnd() bool {
	return s.Current().K == EOF
}
