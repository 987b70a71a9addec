package texcalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// bigops are functions whose bounds are written as a subscript and a
// superscript instead of bracketed arguments.
var bigops = map[string]bool{
	"int":  true,
	"sum":  true,
	"prod": true,
}

// decorations are sizing hints. They lex to nothing.
var decorations = map[string]bool{
	"left":  true,
	"right": true,
	"big":   true,
	"Big":   true,
	"bigg":  true,
	"Bigg":  true,
}

var single = map[rune]TokenKind{
	'=': TokenEqual,
	'+': TokenAdd,
	'-': TokenSub,
	'*': TokenTimes,
	'/': TokenDiv,
	'(': TokenParenOpen,
	')': TokenParenClose,
	'[': TokenBracketOpen,
	']': TokenBracketClose,
	',': TokenComma,
	'.': TokenDot,
}

// eos is returned by read at the end of the input.
const eos rune = -1

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// rune is the column of the next rune to read.
	rune int
	// q holds tokens scanned ahead of the one being returned.
	q   []Token
	eof bool
	// ate is set when the last read hit the end of src, so there is nothing
	// to unread.
	ate bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// Lex scans a single expression from src and normalizes it. Scanning stops at
// the first line break or at the end of src. Runes after the line break are
// left unread.
func Lex(src io.RuneScanner) (Proto, error) {
	return lex(src).all()
}

// read reads a rune from src and updates the lexer's position info. At the
// end of the input, the result is eos.
func (l *lexer) read() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.ate = true
			return eos, nil
		}
		return eos, err
	}
	l.ate = false
	if sz > 0 {
		l.rune++
	}
	return r, nil
}

// unread unreads the last rune read. Panics if unreading returns an error.
func (l *lexer) unread() {
	if l.ate {
		return
	}
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// all scans every token up to the terminator and normalizes the result.
func (l *lexer) all() (Proto, error) {
	var p Proto
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return normalize(p, tok)
		}
		// Empty braces separate blocks for readability, e.g. a^2{}b.
		if tok.Kind == TokenExpr && tok.Text == "" {
			continue
		}
		p = append(p, tok)
	}
}

// next scans the next token from the input. After the EOF token has been
// returned, the result is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	if len(l.q) > 0 {
		tok := l.q[0]
		l.q = l.q[1:]
		return tok, nil
	}
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		tok := Token{Pos: l.rune}
		r, err := l.read()
		if err != nil {
			return tok, err
		}
		switch {
		case r == eos, r == '\n':
			l.eof = true
			tok.Kind = TokenEOF
			return tok, nil
		case unicode.IsSpace(r):
			continue
		case r == '_', r == '^':
			tok.Kind = TokenSubscript
			if r == '^' {
				tok.Kind = TokenSuperscript
			}
			tok.Text, tok.TextPos, err = l.script(r)
			return tok, err
		case unicode.IsLetter(r):
			l.unread()
			if err := l.scan(wordRune); err != nil {
				return tok, err
			}
			tok.Kind = TokenExpr
			tok.Text = l.buf.String()
			return tok, nil
		case unicode.IsDigit(r):
			l.unread()
			if err := l.scan(numRune); err != nil {
				return tok, err
			}
			tok.Kind = TokenExpr
			tok.Text = l.buf.String()
			return tok, nil
		case r == '{':
			tok.Kind = TokenExpr
			tok.Text, _, err = l.braced()
			return tok, err
		case r == '}':
			tok.Kind = TokenBraceClose
			return tok, nil
		case r == '\\':
			return l.function(tok)
		default:
			if k, ok := single[r]; ok {
				tok.Kind = k
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

func wordRune(r rune) bool {
	return r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func numRune(r rune) bool {
	return r == '.' || unicode.IsDigit(r)
}

func nameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scan writes the longest run of runes satisfying ok to the buffer.
func (l *lexer) scan(ok func(rune) bool) error {
	for {
		r, err := l.read()
		if err != nil {
			return err
		}
		if r == eos || !ok(r) {
			l.unread()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// braced reads up to the brace matching one that has already been read and
// returns the content between them and the column where the content starts.
// If the content is itself wrapped in a single pair of braces, that pair is
// removed as well.
func (l *lexer) braced() (string, int, error) {
	var b strings.Builder
	col := l.rune - 1
	depth := 0
	for {
		r, err := l.read()
		if err != nil {
			return "", 0, err
		}
		switch r {
		case eos, '\n':
			l.unread()
			return "", 0, &LexError{Text: "{" + b.String(), Reason: "unterminated group", Col: col}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				s := b.String()
				u := unwrap(s)
				if len(u) != len(s) {
					return u, col + 2, nil
				}
				return s, col + 1, nil
			}
			depth--
		}
		b.WriteRune(r)
	}
}

// unwrap removes one pair of braces from s if the first brace in s matches the
// last.
func unwrap(s string) string {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return s
	}
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				// The first brace closed before the end, e.g. {a}+{b}.
				return s
			}
		}
	}
	return s[1 : len(s)-1]
}

// script reads the content of a superscript or subscript and returns it with
// its column. The content of _{abc} is abc; the content of _abc is a.
func (l *lexer) script(mark rune) (string, int, error) {
	col := l.rune - 1
	r, err := l.read()
	if err != nil {
		return "", 0, err
	}
	switch r {
	case eos, '\n':
		l.unread()
		return "", 0, &LexError{Text: string(mark), Reason: "missing script", Col: col}
	case '{':
		return l.braced()
	default:
		return string(r), col + 1, nil
	}
}

// optional reads a bracketed optional argument after its open bracket.
func (l *lexer) optional() (string, error) {
	col := l.rune - 1
	var b strings.Builder
	for {
		r, err := l.read()
		if err != nil {
			return "", err
		}
		switch {
		case r == ']':
			return b.String(), nil
		case r == eos, r == '\n':
			l.unread()
			return "", &LexError{Text: "[" + b.String(), Reason: "unterminated optional argument", Col: col}
		case wordRune(r):
			b.WriteRune(r)
		default:
			b.WriteRune(r)
			return "", &LexError{Text: "[" + b.String(), Kind: "optional argument", Col: l.rune - 1}
		}
	}
}

// function reads a function after its backslash. Argument counts are not
// checked here; functions check them when they are called.
func (l *lexer) function(tok Token) (Token, error) {
	if err := l.scan(nameRune); err != nil {
		return tok, err
	}
	name := l.buf.String()
	if name == "" {
		r, err := l.read()
		if err != nil {
			return tok, err
		}
		l.buf.WriteByte('\\')
		if r != eos {
			l.buf.WriteRune(r)
		}
		return tok, l.error("function")
	}
	if decorations[name] {
		tok.Kind = TokenExpr
		return tok, nil
	}
	tok.Kind = TokenFunc
	tok.Text = name
	big := bigops[name]
	var bounds []Token
	for {
		pos := l.rune
		r, err := l.read()
		if err != nil {
			return tok, err
		}
		switch {
		case r == '[':
			s, err := l.optional()
			if err != nil {
				return tok, err
			}
			if s != "" {
				tok.Opt = append(tok.Opt, s)
			}
			continue
		case r == '{':
			s, _, err := l.braced()
			if err != nil {
				return tok, err
			}
			if s != "" {
				tok.Req = append(tok.Req, s)
			}
			continue
		case big && (r == '_' || r == '^'):
			b := Token{Kind: TokenSubscript, Pos: pos}
			if r == '^' {
				b.Kind = TokenSuperscript
			}
			b.Text, b.TextPos, err = l.script(r)
			if err != nil {
				return tok, err
			}
			bounds = append(bounds, b)
			continue
		}
		l.unread()
		break
	}
	if name == "var" {
		if len(tok.Req) == 0 {
			return tok, &LexError{Text: `\var`, Reason: "binding without content", Col: tok.Pos}
		}
		for _, b := range tok.Req[1:] {
			l.q = append(l.q, Token{Kind: TokenVar, Text: b, Pos: tok.Pos})
		}
		return Token{Kind: TokenVar, Text: tok.Req[0], Pos: tok.Pos}, nil
	}
	l.q = append(l.q, bounds...)
	return tok, nil
}

// normalize fuses big operators with their bounds, merges subscripted names,
// and moves bindings to the end, just before the terminator end.
func normalize(p Proto, end Token) (Proto, error) {
	r := make(Proto, 0, len(p)+1)
	var vars Proto
	for i := 0; i < len(p); i++ {
		tok := p[i]
		switch {
		case tok.Kind == TokenFunc && bigops[tok.Text]:
			var sub, sup *Token
			for j := i + 1; j < len(p) && j <= i+2; j++ {
				switch p[j].Kind {
				case TokenSubscript:
					if sub == nil {
						sub = &p[j]
					}
				case TokenSuperscript:
					if sup == nil {
						sup = &p[j]
					}
				}
			}
			if sub == nil || sup == nil {
				return nil, &LexError{Text: tok.Source(), Reason: "missing bounds", Col: tok.Pos}
			}
			r = append(r, Token{
				Kind: TokenFunc,
				Text: tok.Text,
				Opt:  []string{sub.Text, sup.Text},
				Req:  tok.Req,
				Pos:  tok.Pos,
			})
			i += 2
		case tok.Kind == TokenVar:
			vars = append(vars, tok)
		case tok.Kind == TokenExpr && i+1 < len(p) && p[i+1].Kind == TokenSubscript:
			// c_p names a variable.
			tok.Text += "_" + p[i+1].Text
			r = append(r, tok)
			i++
		default:
			r = append(r, tok)
		}
	}
	r = append(r, vars...)
	r = append(r, end)
	return r, nil
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune - 1,
	}
}

// LexError indicates text that cannot be tokenized. It implements InputError.
type LexError struct {
	// Text is the text the lexer was scanning when the error occurred,
	// including the offending rune if there is one.
	Text string
	// Kind is the type of token the lexer was scanning. This may be
	// "function", "optional argument", or the empty string if a token kind
	// hadn't been decided.
	Kind string
	// Reason describes a structural problem, like an unterminated group or a
	// big operator missing its bounds. If Reason is set, Kind is unused.
	Reason string
	// Col is the column of the offending rune or token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	switch {
	case err.Reason != "":
		return err.Reason + " at " + pos + ": " + err.Text
	case err.Kind == "":
		return "invalid token at " + pos + ": " + err.Text
	default:
		return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
	}
}

func (err *LexError) Pos() int {
	return err.Col
}
