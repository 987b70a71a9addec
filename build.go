package texcalc

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Build builds the expression tree from a postfix Proto. Values are pushed on
// a stack, and each operator takes the top two, the most recent becoming its
// right operand. A superscript takes only one, since its exponent is its own
// text. Bindings are collected in order without being pushed. Building stops
// at the terminator, which must find exactly one tree on the stack.
func Build(p Proto) (*AST, error) {
	var stack []*node
	var bindings []string
	for _, tok := range p {
		switch {
		case tok.isOperand():
			stack = append(stack, &node{tok: tok})
		case tok.Kind == TokenVar:
			bindings = append(bindings, tok.Text)
		case tok.Kind == TokenSuperscript:
			if len(stack) < 1 {
				return nil, &BuildError{Token: tok, Depth: len(stack)}
			}
			exp, more, err := exponent(tok)
			if err != nil {
				return nil, err
			}
			k := len(stack) - 1
			stack[k] = &node{tok: tok, left: stack[k], right: exp}
			bindings = append(bindings, more...)
		case tok.isOperator():
			if len(stack) < 2 {
				return nil, &BuildError{Token: tok, Depth: len(stack)}
			}
			k := len(stack) - 2
			stack[k] = &node{tok: tok, left: stack[k], right: stack[k+1]}
			stack = stack[:k+1]
		case tok.Kind == TokenEOF:
			if len(stack) != 1 {
				return nil, &BuildError{Token: tok, Depth: len(stack)}
			}
			return &AST{n: stack[0], bindings: bindings}, nil
		default:
			return nil, &BuildError{Token: tok, Depth: len(stack)}
		}
	}
	return nil, &BuildError{Depth: len(stack)}
}

// symbol matches exponent text that is a single value.
var symbol = regexp.MustCompile(`^(?:[+-]?(?:\d+(?:\.\d*)?|\.\d+)|[\pL\pN.]+)$`)

// exponent builds the right operand of a superscript. Compound exponents like
// ^{n+1} are parsed as expressions of their own. The second result holds the
// bindings written inside the exponent. Errors in the exponent report columns
// of the whole line.
func exponent(tok Token) (*node, []string, error) {
	text := strings.TrimSpace(tok.Text)
	if symbol.MatchString(text) {
		return &node{tok: Token{Kind: TokenExpr, Text: text, Pos: tok.Pos}}, nil, nil
	}
	a, err := ParseString(text)
	if err != nil {
		lead := strings.Index(tok.Text, text)
		return nil, nil, shift(err, tok.TextPos-1+utf8.RuneCountInString(tok.Text[:lead]))
	}
	return a.n, a.bindings, nil
}

// shift moves the column of an input error right by n.
func shift(err error, n int) error {
	if n <= 0 {
		return err
	}
	var (
		le *LexError
		pe *ParseError
		be *BuildError
	)
	switch {
	case errors.As(err, &le):
		le.Col += n
	case errors.As(err, &pe):
		if pe.Col > 0 {
			pe.Col += n
		}
		if pe.Token.Pos > 0 {
			pe.Token.Pos += n
		}
	case errors.As(err, &be):
		if be.Token.Pos > 0 {
			be.Token.Pos += n
		}
	}
	return err
}
