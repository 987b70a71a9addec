package texcalc

import (
	"io"
	"strings"
)

// prec gives the precedence of a binary operator. Higher is more binding.
// Tokens that aren't operators have precedence 0, so an open parenthesis on
// the operator stack is never popped by an operator.
func prec(tok Token) int {
	switch tok.Kind {
	case TokenAdd, TokenSub:
		return 1
	case TokenTimes, TokenDiv:
		return 2
	case TokenSuperscript:
		return 3
	default:
		return 0
	}
}

// Postfix converts a normalized infix Proto to postfix order.
//
// Every operator is left-associative, including exponentiation: a^b^c is
// (a^b)^c.
func Postfix(p Proto) (Proto, error) {
	r := make(Proto, 0, len(p))
	var stack, vars Proto
	var end Token
scan:
	for _, tok := range p {
		switch {
		case tok.isOperand():
			r = append(r, tok)
		case tok.isOperator():
			for len(stack) > 0 && prec(stack[len(stack)-1]) >= prec(tok) {
				r = append(r, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case tok.Kind == TokenParenOpen:
			stack = append(stack, tok)
		case tok.Kind == TokenParenClose:
			for {
				if len(stack) == 0 {
					return nil, &ParseError{Col: tok.Pos, Token: tok, Unbalanced: true}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == TokenParenOpen {
					break
				}
				r = append(r, top)
			}
		case tok.Kind == TokenVar:
			vars = append(vars, tok)
		case tok.Kind == TokenEOF:
			end = tok
			break scan
		default:
			return nil, &ParseError{Col: tok.Pos, Token: tok}
		}
	}
	if end.Kind != TokenEOF {
		return nil, &ParseError{Col: end.Pos, Token: end}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == TokenParenOpen {
			return nil, &ParseError{Col: top.Pos, Token: top, Unbalanced: true}
		}
		r = append(r, top)
	}
	r = append(r, vars...)
	r = append(r, end)
	return r, nil
}

// Parse lexes, reorders, and builds a single expression from src.
func Parse(src io.RuneScanner) (*AST, error) {
	p, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p, err = Postfix(p)
	if err != nil {
		return nil, err
	}
	return Build(p)
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string) (*AST, error) {
	return Parse(strings.NewReader(src))
}
