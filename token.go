package texcalc

import (
	"strconv"
	"strings"
)

// Token is a single lexical element of a snippet.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Text is the text of an expression, the name of a function, the content
	// of a superscript or subscript, or the raw name=value of a binding.
	Text string
	// Opt and Req are the bracketed and braced arguments of a function.
	Opt, Req []string
	// Pos is the column at which the token starts.
	Pos int
	// TextPos is the column at which Text starts in a superscript or
	// subscript.
	TextPos int
}

// Proto is a sequence of tokens in either infix or postfix order.
type Proto []Token

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenExpr is a run of letters and digits, a number, or braced content.
	TokenExpr
	// TokenFunc is a function introduced by a backslash.
	TokenFunc
	TokenEqual
	TokenAdd
	TokenSub
	TokenTimes
	TokenDiv
	TokenParenOpen
	TokenParenClose
	TokenBracketOpen
	TokenBracketClose
	// TokenBraceClose is a lone close brace dividing blocks.
	TokenBraceClose
	// TokenSuperscript is ^ with its content. It is an operator.
	TokenSuperscript
	TokenSubscript
	TokenDot
	TokenComma
	// TokenVar is a deferred name=value binding from \var.
	TokenVar
	// TokenEOF ends every normalized Proto.
	TokenEOF
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token
//go:generate go mod tidy

// symbols gives the source text of single-symbol tokens.
var symbols = map[TokenKind]string{
	TokenEqual:        "=",
	TokenAdd:          "+",
	TokenSub:          "-",
	TokenTimes:        "*",
	TokenDiv:          "/",
	TokenParenOpen:    "(",
	TokenParenClose:   ")",
	TokenBracketOpen:  "[",
	TokenBracketClose: "]",
	TokenBraceClose:   "}",
	TokenDot:          ".",
	TokenComma:        ",",
}

// Source returns an approximation of the text the token was lexed from.
func (t Token) Source() string {
	switch t.Kind {
	case TokenExpr:
		return t.Text
	case TokenFunc:
		var b strings.Builder
		b.WriteByte('\\')
		b.WriteString(t.Text)
		for _, a := range t.Opt {
			b.WriteByte('[')
			b.WriteString(a)
			b.WriteByte(']')
		}
		for _, a := range t.Req {
			b.WriteByte('{')
			b.WriteString(a)
			b.WriteByte('}')
		}
		return b.String()
	case TokenSuperscript:
		return "^{" + t.Text + "}"
	case TokenSubscript:
		return "_{" + t.Text + "}"
	case TokenVar:
		return `\var{` + t.Text + "}"
	case TokenEOF:
		return ""
	default:
		return symbols[t.Kind]
	}
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Source() + "@" + strconv.Itoa(t.Pos)
}

// isOperator reports whether the token is a binary operator.
func (t Token) isOperator() bool {
	switch t.Kind {
	case TokenAdd, TokenSub, TokenTimes, TokenDiv, TokenSuperscript:
		return true
	}
	return false
}

// isOperand reports whether the token becomes a leaf of the tree.
func (t Token) isOperand() bool {
	return t.Kind == TokenExpr || t.Kind == TokenFunc
}
