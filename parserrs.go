package texcalc

import "strconv"

// ParseError is an error indicating a token that cannot appear where it does
// in an expression, like an equals sign or a stray close brace. It implements
// InputError.
type ParseError struct {
	// Col is the position of the token.
	Col int
	// Token is the token that was not understood.
	Token Token
	// Unbalanced indicates a parenthesis with no partner.
	Unbalanced bool
}

func (err *ParseError) Error() string {
	switch {
	case err.Token.Kind == TokenNone:
		return errpos(err.Col, "expression has no terminator")
	case err.Unbalanced && err.Token.Kind == TokenParenOpen:
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	case err.Unbalanced:
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	default:
		return errpos(err.Col, "unexpected token "+err.Token.Kind.String()+" "+strconv.Quote(err.Token.Source()))
	}
}

func (err *ParseError) Pos() int {
	return err.Col
}

// BuildError indicates a postfix sequence that does not describe exactly one
// tree. Parse never produces one from valid input except when operators lack
// operands, as in "1 ++ 2".
type BuildError struct {
	// Token is the token being processed when the error was detected. It is
	// the terminator if the sequence ended with the wrong number of trees.
	Token Token
	// Depth is the number of trees on the operand stack at that point.
	Depth int
}

func (err *BuildError) Error() string {
	if err.Token.isOperator() {
		return errpos(err.Token.Pos, "operator "+strconv.Quote(err.Token.Source())+" is missing operands")
	}
	if err.Token.Kind == TokenEOF {
		return errpos(err.Token.Pos, "expression makes "+strconv.Itoa(err.Depth)+" values instead of 1")
	}
	return errpos(err.Token.Pos, "token "+err.Token.Kind.String()+" cannot appear in a postfix expression")
}

func (err *BuildError) Pos() int {
	return err.Token.Pos
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// text that cannot be parsed implements InputError.
type InputError interface {
	error
	// Pos returns the column of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*BuildError)(nil)
)
