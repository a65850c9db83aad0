package wls

import "strings"

type Kind int

const (
	EOF Kind = iota
	EOL

	IDENT
	NUMBER
	STRING

	KW_SPAWN
	KW_COLOR
	KW_SIZE
	KW_DRAWLINE
	KW_DRAWCIRCLE
	KW_DRAWRECTANGLE
	KW_FILL
	KW_GOTO
	KW_TRUE
	KW_FALSE

	ASSIGN
	EQ
	NE
	LT
	LE
	GT
	GE
	AND
	OR
	NOT
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POW

	LPAREN
	RPAREN
	LBRACK
	RBRACK
	COMMA
)

// Tok is immutable once produced. Val holds the parsed literal for NUMBER,
// STRING and boolean keyword tokens.
type Tok struct {
	K   Kind
	Lit string
	P   Pos
	Val Value
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case EOL:
		return "EOL"
	case IDENT:
		return "IDENT"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case KW_SPAWN:
		return "Spawn"
	case KW_COLOR:
		return "Color"
	case KW_SIZE:
		return "Size"
	case KW_DRAWLINE:
		return "DrawLine"
	case KW_DRAWCIRCLE:
		return "DrawCircle"
	case KW_DRAWRECTANGLE:
		return "DrawRectangle"
	case KW_FILL:
		return "Fill"
	case KW_GOTO:
		return "GoTo"
	case KW_TRUE:
		return "true"
	case KW_FALSE:
		return "false"
	case ASSIGN:
		return "<-"
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case AND:
		return "&&"
	case OR:
		return "||"
	case NOT:
		return "!"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case POW:
		return "**"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case LBRACK:
		return "["
	case RBRACK:
		return "]"
	case COMMA:
		return ","
	default:
		return "?"
	}
}

// keys are lower-cased; lookups ignore case.
var kw = map[string]Kind{
	"spawn":         KW_SPAWN,
	"color":         KW_COLOR,
	"size":          KW_SIZE,
	"drawline":      KW_DRAWLINE,
	"drawcircle":    KW_DRAWCIRCLE,
	"drawrectangle": KW_DRAWRECTANGLE,
	"fill":          KW_FILL,
	"goto":          KW_GOTO,
	"true":          KW_TRUE,
	"false":         KW_FALSE,
}

// ops is tried in order, so multi-character operators must come first.
var ops = []struct {
	lit string
	k   Kind
}{
	{"<-", ASSIGN},
	{"<=", LE},
	{">=", GE},
	{"!=", NE},
	{"==", EQ},
	{"&&", AND},
	{"||", OR},
	{"**", POW},
	{"!", NOT},
	{"+", PLUS},
	{"-", MINUS},
	{"*", STAR},
	{"/", SLASH},
	{"%", PERCENT},
	{"<", LT},
	{">", GT},
	{",", COMMA},
	{"(", LPAREN},
	{")", RPAREN},
	{"[", LBRACK},
	{"]", RBRACK},
}

func lookupKeyword(name string) (Kind, bool) {
	k, ok := kw[strings.ToLower(name)]
	return k, ok
}

// IsKeyword reports whether name is a reserved word, ignoring case.
func IsKeyword(name string) bool {
	_, ok := lookupKeyword(name)
	return ok
}

// Keywords returns every reserved word in its canonical spelling.
func Keywords() []string {
	out := make([]string, 0, KW_FALSE-KW_SPAWN+1)
	for k := KW_SPAWN; k <= KW_FALSE; k++ {
		out = append(out, k.String())
	}
	return out
}
