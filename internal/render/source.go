package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/styles"
	"github.com/mattn/go-runewidth"

	"github.com/unkn0wn-root/walle/internal/wls"
)

const sourceStyle = "monokai"

var (
	lexerOnce sync.Once
	lexer     chroma.Lexer
)

func scriptLexer() chroma.Lexer {
	lexerOnce.Do(func() {
		lexer = chroma.MustNewLexer(
			&chroma.Config{
				Name:            "Wall-E",
				Aliases:         []string{"walle", "pw"},
				Filenames:       []string{"*.pw", "*.gw"},
				CaseInsensitive: true,
			},
			chroma.Rules{
				"root": {
					{Pattern: `\s+`, Type: chroma.Text},
					{Pattern: wordsPattern(wls.Keywords()), Type: chroma.Keyword},
					{Pattern: wordsPattern(wls.BuiltinNames()), Type: chroma.NameBuiltin},
					{Pattern: `"[^"\n]*"?`, Type: chroma.LiteralString},
					{Pattern: `[0-9]+`, Type: chroma.LiteralNumber},
					{Pattern: `\*\*|&&|\|\||==|>=|<=|<-|[-+*/%<>]`, Type: chroma.Operator},
					{Pattern: `[()\[\],]`, Type: chroma.Punctuation},
					{Pattern: `[A-Za-z_][A-Za-z0-9_-]*`, Type: chroma.Name},
					{Pattern: `.`, Type: chroma.Error},
				},
			},
		)
	})
	return lexer
}

func wordsPattern(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return `\b(` + strings.Join(quoted, "|") + `)\b`
}

// Source lists src with a line-number gutter, highlighted unless the
// renderer is plain. Lines wider than width cells are clipped; width <= 0
// disables clipping.
func (r *Renderer) Source(src string, width int) string {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	gutter := len(strconv.Itoa(len(lines)))
	if width > 0 {
		avail := max(width-gutter-2, 1)
		for i, line := range lines {
			if runewidth.StringWidth(line) > avail {
				lines[i] = runewidth.Truncate(line, avail, "…")
			}
		}
	}

	body := lines
	if !r.Plain() {
		if colored, err := highlight(strings.Join(lines, "\n")); err == nil {
			body = strings.Split(colored, "\n")
		}
	}

	var b strings.Builder
	for i := range lines {
		num := fmt.Sprintf("%*d", gutter, i+1)
		if !r.Plain() {
			num = r.theme.Muted.Render(num)
		}
		b.WriteString(num)
		b.WriteString("  ")
		if i < len(body) {
			b.WriteString(body[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func highlight(src string) (string, error) {
	it, err := scriptLexer().Tokenise(nil, src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := formatters.TTY256.Format(&buf, styles.Get(sourceStyle), it); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
