package texcalc

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// protoCmp compares tokens without their positions.
var protoCmp = cmp.Options{
	cmpopts.IgnoreFields(Token{}, "Pos", "TextPos"),
	cmpopts.EquateEmpty(),
}

func ex(text string) Token {
	return Token{Kind: TokenExpr, Text: text}
}

func fn(name string, opt, req []string) Token {
	return Token{Kind: TokenFunc, Text: name, Opt: opt, Req: req}
}

func op(k TokenKind) Token {
	return Token{Kind: k}
}

func sup(text string) Token {
	return Token{Kind: TokenSuperscript, Text: text}
}

func bind(text string) Token {
	return Token{Kind: TokenVar, Text: text}
}

var eof = Token{Kind: TokenEOF}

func TestLex(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Proto
	}{
		{"empty", "", Proto{eof}},
		{"spaces", " \t \r ", Proto{eof}},
		{"name", "x", Proto{ex("x"), eof}},
		{"empty-braces", "{}x", Proto{ex("x"), eof}},
		{"empty-braces-between", "a^2{}b", Proto{ex("a"), sup("2"), ex("b"), eof}},
		{"number", "12.5", Proto{ex("12.5"), eof}},
		{"number-then-name", "12.5x", Proto{ex("12.5"), ex("x"), eof}},
		{"name-with-digits", "x1.5", Proto{ex("x1.5"), eof}},
		{"polynomial", "ax^2 + bx + c", Proto{ex("ax"), sup("2"), op(TokenAdd), ex("bx"), op(TokenAdd), ex("c"), eof}},
		{"symbols", "= + - * / ( ) [ ] , . }", Proto{
			op(TokenEqual), op(TokenAdd), op(TokenSub), op(TokenTimes), op(TokenDiv),
			op(TokenParenOpen), op(TokenParenClose), op(TokenBracketOpen), op(TokenBracketClose),
			op(TokenComma), op(TokenDot), op(TokenBraceClose), eof,
		}},
		{"funcs", `\frac{1}{2} + \sqrt[3]{4}`, Proto{fn("frac", nil, []string{"1", "2"}), op(TokenAdd), fn("sqrt", []string{"3"}, []string{"4"}), eof}},
		{"func-no-args", `\rho`, Proto{fn("rho", nil, nil), eof}},
		{"func-nested-braces", `\frac{\mu{}c_p}{k}`, Proto{fn("frac", nil, []string{`\mu{}c_p`, "k"}), eof}},
		{"func-empty-args", `\f[]{}{1}`, Proto{fn("f", nil, []string{"1"}), eof}},
		{"func-power", `\frac{1}{2}^2`, Proto{fn("frac", nil, []string{"1", "2"}), sup("2"), eof}},
		{"decorations", `\left(a + \frac{b}{c}\right) + d`, Proto{
			op(TokenParenOpen), ex("a"), op(TokenAdd), fn("frac", nil, []string{"b", "c"}), op(TokenParenClose),
			op(TokenAdd), ex("d"), eof,
		}},
		{"big-decorations", `\big(1\Big)`, Proto{op(TokenParenOpen), ex("1"), op(TokenParenClose), eof}},
		{"braces", "{a+b}", Proto{ex("a+b"), eof}},
		{"double-braces", "{{a}}", Proto{ex("a"), eof}},
		{"separate-braces", "{{a}+{b}}", Proto{ex("{a}+{b}"), eof}},
		{"superscript-braced", "a^{n+1}", Proto{ex("a"), sup("n+1"), eof}},
		{"superscript-single", "a^23", Proto{ex("a"), sup("2"), ex("3"), eof}},
		{"superscript-unbraced-fraction", "2^0.5", Proto{ex("2"), sup("0"), op(TokenDot), ex("5"), eof}},
		{"subscripted-name", "T_0 + T_{s}", Proto{ex("T_0"), op(TokenAdd), ex("T_s"), eof}},
		{"var", `a+1\var{a=1}`, Proto{ex("a"), op(TokenAdd), ex("1"), bind("a=1"), eof}},
		{"var-first", `\var{a=1}a+1`, Proto{ex("a"), op(TokenAdd), ex("1"), bind("a=1"), eof}},
		{"vars-in-order", `\var{b=2}a\var{a=1}+b`, Proto{ex("a"), op(TokenAdd), ex("b"), bind("b=2"), bind("a=1"), eof}},
		{"var-many", `\var{a=1}{b=2}`, Proto{bind("a=1"), bind("b=2"), eof}},
		{"int", `\int_a^b{x}`, Proto{fn("int", []string{"a", "b"}, []string{"x"}), eof}},
		{"int-reversed", `\int^b_a{x}`, Proto{fn("int", []string{"a", "b"}, []string{"x"}), eof}},
		{"int-braced-bounds", `\int_{0}^{1}{0}{0.25}{1}`, Proto{fn("int", []string{"0", "1"}, []string{"0", "0.25", "1"}), eof}},
		{"sum", `\sum_1^3{1}{2}{3} + 1`, Proto{fn("sum", []string{"1", "3"}, []string{"1", "2", "3"}), op(TokenAdd), ex("1"), eof}},
		{"prod-no-args", `\prod^{10}_{2}`, Proto{fn("prod", []string{"2", "10"}, nil), eof}},
		{"newline", "1+2\n3", Proto{ex("1"), op(TokenAdd), ex("2"), eof}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Lex(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("lexing %q: %v", c.src, err)
			}
			if diff := cmp.Diff(c.want, got, protoCmp); diff != "" {
				t.Errorf("lexing %q: wrong tokens (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestLexEmptyBracesInvisible(t *testing.T) {
	a, err := Lex(strings.NewReader("{}x"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Lex(strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(b, a, protoCmp); diff != "" {
		t.Errorf("{}x and x lex differently (-x +{}x):\n%s", diff)
	}
}

func TestLexBoundOrder(t *testing.T) {
	for _, name := range []string{"int", "sum", "prod"} {
		a, err := Lex(strings.NewReader(`\` + name + `_a^b{1}{2}{3}`))
		if err != nil {
			t.Fatal(err)
		}
		b, err := Lex(strings.NewReader(`\` + name + `^b_a{1}{2}{3}`))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(a, b, protoCmp); diff != "" {
			t.Errorf("%s bounds depend on order (-sub first +sup first):\n%s", name, diff)
		}
	}
}

func TestLexLines(t *testing.T) {
	src := strings.NewReader("1+2\n3\n")
	want := []Proto{
		{ex("1"), op(TokenAdd), ex("2"), eof},
		{ex("3"), eof},
		{eof},
	}
	for i, w := range want {
		got, err := Lex(src)
		if err != nil {
			t.Fatalf("line %d: %v", i+1, err)
		}
		if diff := cmp.Diff(w, got, protoCmp); diff != "" {
			t.Errorf("line %d: wrong tokens (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestLexPositions(t *testing.T) {
	got, err := Lex(strings.NewReader(`ab + \frac{1}{2}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 4, 6, 17}
	if len(got) != len(want) {
		t.Fatalf("wrong number of tokens: want %d, got %v", len(want), got)
	}
	for i, tok := range got {
		if tok.Pos != want[i] {
			t.Errorf("token %v: want position %d", tok, want[i])
		}
	}
}

func TestLexScriptPositions(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"a^b", 3},
		{"a^{bc}", 4},
		{"a^{{bc}}", 5},
		{"1 + a^{ b}", 8},
	}
	for _, c := range cases {
		got, err := Lex(strings.NewReader(c.src))
		if err != nil {
			t.Fatalf("lexing %q: %v", c.src, err)
		}
		pos := -1
		for _, tok := range got {
			if tok.Kind == TokenSuperscript {
				pos = tok.TextPos
				break
			}
		}
		if pos != c.want {
			t.Errorf("lexing %q: want script text at column %d, got %d", c.src, c.want, pos)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		col    int
		reason string
	}{
		{"dollar", "$", 1, ""},
		{"name-dollar", "a$", 2, ""},
		{"unicode", "1 ≤ 2", 3, ""},
		{"backslash", `\`, 1, ""},
		{"backslash-symbol", `\$`, 2, ""},
		{"unterminated", "{a", 1, "unterminated group"},
		{"unterminated-line", "1+{a\n}", 3, "unterminated group"},
		{"unterminated-arg", `\frac{1}{2`, 9, "unterminated group"},
		{"missing-script", "a^", 2, "missing script"},
		{"optional-operator", `\sqrt[n+1]{x}`, 8, ""},
		{"optional-unterminated", `\sqrt[3`, 6, "unterminated optional argument"},
		{"var-empty", `\var`, 1, "binding without content"},
		{"int-no-bounds", `\int{x}`, 1, "missing bounds"},
		{"int-one-bound", `\int_a{x}`, 1, "missing bounds"},
		{"sum-two-subscripts", `1 + \sum_a_b`, 5, "missing bounds"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Lex(strings.NewReader(c.src))
			if err == nil {
				t.Fatalf("lexing %q gave no error: %v", c.src, p)
			}
			var le *LexError
			if !errors.As(err, &le) {
				t.Fatalf("error %#v is not *LexError", err)
			}
			if le.Pos() != c.col {
				t.Errorf("%q: want error at column %d, got %d (%v)", c.src, c.col, le.Pos(), err)
			}
			if le.Reason != c.reason {
				t.Errorf("%q: want reason %q, got %q", c.src, c.reason, le.Reason)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"a", "a"},
		{"{}", ""},
		{"{a}", "a"},
		{"{{a}}", "{a}"},
		{"{a}+{b}", "{a}+{b}"},
		{"{a{b}c}", "a{b}c"},
		{"{a", "{a"},
	}
	for _, c := range cases {
		if got := unwrap(c.in); got != c.want {
			t.Errorf("unwrap(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestTokenKindString(t *testing.T) {
	cases := []struct {
		k    TokenKind
		want string
	}{
		{TokenNone, "None"},
		{TokenExpr, "Expr"},
		{TokenParenOpen, "ParenOpen"},
		{TokenSuperscript, "Superscript"},
		{TokenEOF, "EOF"},
		{TokenEOF + 1, "TokenKind(" + strconv.Itoa(int(TokenEOF)+1) + ")"},
		{-1, "TokenKind(-1)"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("kind %d: want %q, got %q", int(c.k), c.want, got)
		}
	}
}
