package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Roybie/tigr/pkg/token"
)

// LexicalError reports a character that no recognizer accepts.
type LexicalError struct {
	Line   int
	Offset int
	Char   rune
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected character %q on line %d (offset %d)", e.Char, e.Line, e.Offset)
}

// Token returns the Unexpected token carrying the rejected character.
func (e *LexicalError) Token() token.Token {
	return token.Token{Kind: token.Unexpected, Lit: string(e.Char)}
}

// Lexer turns source text into a stream of positioned tokens. It only moves
// forward; Reset starts the stream over from the first byte.
type Lexer struct {
	src  string
	pos  int
	line int
	err  error
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Reset rewinds the lexer to the beginning of its source.
func (l *Lexer) Reset() {
	l.pos = 0
	l.line = 1
	l.err = nil
}

// Next returns the next significant token. It returns io.EOF at the end of
// input and a *LexicalError when scanning gets stuck; once an error has been
// returned every later call returns it again.
func (l *Lexer) Next() (token.Item, error) {
	for {
		if l.err != nil {
			return token.Item{}, l.err
		}
		if l.pos >= len(l.src) {
			return token.Item{}, io.EOF
		}
		best, ok := l.longest()
		if !ok {
			r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
			l.err = &LexicalError{Line: l.line, Offset: l.pos, Char: r}
			return token.Item{}, l.err
		}
		start, line := l.pos, l.line
		l.pos = best.end
		l.line += best.lines
		if best.tok.Kind.Ignored() {
			continue
		}
		return token.Item{Line: line, Token: best.tok, Offset: start}, nil
	}
}

// Scan tokenizes src completely. On a lexical error the tokens scanned so
// far are returned together with the error.
func Scan(src string) ([]token.Item, error) {
	l := New(src)
	var items []token.Item
	for {
		item, err := l.Next()
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
}

type match struct {
	end   int
	lines int
	tok   token.Token
}

type recognizer func(src string, pos int) (match, bool)

// recognizers in tie-break priority order.
var recognizers = []recognizer{
	scanWhitespace,
	scanLineComment,
	scanBlockComment,
	scanNumber,
	scanString,
	scanBool,
	scanKeyword,
	scanIdentifier,
	scanOperator,
	scanPunctuation,
}

func (l *Lexer) longest() (match, bool) {
	var best match
	found := false
	for _, recognize := range recognizers {
		m, ok := recognize(l.src, l.pos)
		if !ok || m.end <= l.pos {
			continue
		}
		if !found || m.end > best.end {
			best = m
			found = true
		}
	}
	return best, found
}

func scanWhitespace(src string, pos int) (match, bool) {
	i, lines := pos, 0
	for ; i < len(src) && isSpace(src[i]); i++ {
		if src[i] == '\n' {
			lines++
		}
	}
	if i == pos {
		return match{}, false
	}
	return match{end: i, lines: lines, tok: token.Token{Kind: token.IgnoreWhitespace}}, true
}

func scanLineComment(src string, pos int) (match, bool) {
	if !strings.HasPrefix(src[pos:], "//") {
		return match{}, false
	}
	end := len(src)
	if idx := strings.IndexByte(src[pos:], '\n'); idx >= 0 {
		end = pos + idx
	}
	return match{end: end, tok: token.Token{Kind: token.IgnoreComment}}, true
}

func scanBlockComment(src string, pos int) (match, bool) {
	if !strings.HasPrefix(src[pos:], "/*") {
		return match{}, false
	}
	end := len(src)
	if idx := strings.Index(src[pos+2:], "*/"); idx >= 0 {
		end = pos + 2 + idx + 2
	}
	lines := strings.Count(src[pos:end], "\n")
	return match{end: end, lines: lines, tok: token.Token{Kind: token.IgnoreComment}}, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanNumber accepts digits with at most one decimal point. The point is
// only consumed when a digit follows, which keeps `1..5` a range.
func scanNumber(src string, pos int) (match, bool) {
	i := pos
	float := false
	for i < len(src) {
		c := src[i]
		if isDigit(c) {
			i++
			continue
		}
		if c == '.' && !float && i+1 < len(src) && isDigit(src[i+1]) {
			float = true
			i++
			continue
		}
		break
	}
	if i == pos {
		return match{}, false
	}
	kind := token.Integer
	if float {
		kind = token.Float
	}
	return match{end: i, tok: token.Token{Kind: kind, Lit: src[pos:i]}}, true
}

// scanString accepts a single-quoted literal. A backslash skips the next
// character, so escapes stay in the literal text untouched.
func scanString(src string, pos int) (match, bool) {
	if src[pos] != '\'' {
		return match{}, false
	}
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '\'':
			lit := src[pos+1 : i]
			return match{end: i + 1, lines: strings.Count(lit, "\n"), tok: token.Token{Kind: token.String, Lit: lit}}, true
		}
		i++
	}
	return match{}, false
}

func scanBool(src string, pos int) (match, bool) {
	var best match
	found := false
	for _, text := range token.Booleans {
		if strings.HasPrefix(src[pos:], text) && (!found || pos+len(text) > best.end) {
			best = match{end: pos + len(text), tok: token.Token{Kind: token.Bool, Lit: text}}
			found = true
		}
	}
	return best, found
}

func scanTable(table []token.Entry) recognizer {
	return func(src string, pos int) (match, bool) {
		var best match
		found := false
		for _, entry := range table {
			if strings.HasPrefix(src[pos:], entry.Text) && (!found || pos+len(entry.Text) > best.end) {
				best = match{end: pos + len(entry.Text), tok: token.Token{Kind: entry.Kind}}
				found = true
			}
		}
		return best, found
	}
}

var (
	scanKeyword     = scanTable(token.Keywords)
	scanOperator    = scanTable(token.Operators)
	scanPunctuation = scanTable(token.Punctuation)
)

func scanIdentifier(src string, pos int) (match, bool) {
	r, size := utf8.DecodeRuneInString(src[pos:])
	if !unicode.IsLetter(r) && r != '_' {
		return match{}, false
	}
	i := pos + size
	for i < len(src) {
		r, size = utf8.DecodeRuneInString(src[i:])
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' {
			break
		}
		i += size
	}
	return match{end: i, tok: token.Token{Kind: token.Identifier, Lit: src[pos:i]}}, true
}
