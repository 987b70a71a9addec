package texcalc

import (
	"io"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/zephyrtronium/texcalc/numeric"
)

// highAccuracy selects the routine for exponentiation in evaluators that
// don't choose one themselves.
var highAccuracy atomic.Bool

// SetHighAccuracy sets whether exponentiation uses extended precision. When
// off, which is the default, exponents are truncated to integers.
func SetHighAccuracy(on bool) {
	highAccuracy.Store(on)
}

// HighAccuracyEnabled returns the process-wide exponentiation setting.
func HighAccuracyEnabled() bool {
	return highAccuracy.Load()
}

// Evaluator evaluates a built expression. Its variables are fixed when it is
// created. An Evaluator is safe to use concurrently.
type Evaluator struct {
	n     *node
	vars  map[string]float64
	funcs *Catalog
	// high overrides the process-wide accuracy setting if non-nil.
	high  *bool
	depth int
}

// EvalOption is an option used when creating an evaluator.
type EvalOption interface {
	evalOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt  map[string]float64
	catopt   struct{ c *Catalog }
	highopt  bool
	depthopt int
)

func (varopt) evalOption()   {}
func (varsopt) evalOption()  {}
func (catopt) evalOption()   {}
func (highopt) evalOption()  {}
func (depthopt) evalOption() {}

// SetVar sets the value of a variable. Bindings written in the expression
// take precedence.
func SetVar(name string, val float64) EvalOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables. Bindings written in the
// expression take precedence.
func SetVars(vars map[string]float64) EvalOption {
	return varsopt(vars)
}

// WithCatalog sets the catalog in which functions are looked up. The default
// is DefaultCatalog().
func WithCatalog(c *Catalog) EvalOption {
	return catopt{c}
}

// HighAccuracy sets the exponentiation routine for one evaluator, overriding
// SetHighAccuracy.
func HighAccuracy(on bool) EvalOption {
	return highopt(on)
}

// MaxDepth limits the depth of the tree that an evaluator walks. Zero means
// no limit.
func MaxDepth(n int) EvalOption {
	return depthopt(n)
}

// NewEvaluator creates an evaluator for a tree and resolves its bindings. If a
// binding is not of the form name=number, the error is a *BindingError.
func NewEvaluator(a *AST, opts ...EvalOption) (*Evaluator, error) {
	e := Evaluator{
		n:     a.n,
		vars:  make(map[string]float64, len(a.bindings)),
		funcs: defaultCatalog,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			e.vars[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				e.vars[k] = v
			}
		case catopt:
			if opt.c != nil {
				e.funcs = opt.c
			}
		case highopt:
			on := bool(opt)
			e.high = &on
		case depthopt:
			e.depth = int(opt)
		default:
			panic("texcalc: unknown option type")
		}
	}
	for _, b := range a.bindings {
		name, val, err := binding(b)
		if err != nil {
			return nil, err
		}
		logger.Debugf("binding %s = %g", name, val)
		e.vars[name] = val
	}
	return &e, nil
}

// binding splits a name=value binding on its first equals sign.
func binding(b string) (string, float64, error) {
	k := strings.IndexByte(b, '=')
	if k < 0 {
		return "", 0, &BindingError{Binding: b, Reason: "no ="}
	}
	name := strings.TrimSpace(b[:k])
	if name == "" {
		return "", 0, &BindingError{Binding: b, Reason: "no name"}
	}
	val, ok := parseNum(b[k+1:])
	if !ok {
		return "", 0, &BindingError{Binding: b, Reason: "value is not a number"}
	}
	return name, val, nil
}

// Vars returns a copy of the evaluator's variables.
func (e *Evaluator) Vars() map[string]float64 {
	r := make(map[string]float64, len(e.vars))
	for k, v := range e.vars {
		r[k] = v
	}
	return r
}

// Calculate evaluates the expression. If any part of the evaluation fails,
// e.g. an undefined name or a function argument outside the function's
// domain, the result is 0 and the error describes the failure.
func (e *Evaluator) Calculate() (float64, error) {
	c := calc{
		vars:  e.vars,
		funcs: e.funcs,
		high:  highAccuracy.Load(),
		depth: e.depth,
	}
	if e.high != nil {
		c.high = *e.high
	}
	r, err := c.eval(e.n, 1)
	if err != nil {
		return 0, err
	}
	return r, nil
}

// calc holds the settings of a single evaluation.
type calc struct {
	vars  map[string]float64
	funcs *Catalog
	high  bool
	depth int
}

func (c *calc) eval(n *node, depth int) (float64, error) {
	if c.depth > 0 && depth > c.depth {
		return 0, &DepthError{Max: c.depth}
	}
	if n.isValue() {
		return c.value(n.tok)
	}
	l, err := c.eval(n.left, depth+1)
	if err != nil {
		return 0, err
	}
	r, err := c.eval(n.right, depth+1)
	if err != nil {
		return 0, err
	}
	switch n.tok.Kind {
	case TokenAdd:
		return l + r, nil
	case TokenSub:
		return l - r, nil
	case TokenTimes:
		return l * r, nil
	case TokenDiv:
		// Division by zero gives an infinity or NaN, unlike \frac.
		return l / r, nil
	case TokenSuperscript:
		return c.pow(l, r), nil
	default:
		panic("texcalc: invalid operator node " + n.tok.String())
	}
}

func (c *calc) value(tok Token) (float64, error) {
	switch tok.Kind {
	case TokenExpr:
		return knownOf(tok.Text).value(c.vars)
	case TokenFunc:
		fn, err := c.funcs.Lookup(tok.Text)
		if err != nil {
			return 0, err
		}
		opt, err := args(tok.Text, tok.Opt, true)
		if err != nil {
			return 0, err
		}
		req, err := args(tok.Text, tok.Req, false)
		if err != nil {
			return 0, err
		}
		return fn.Call(opt, req)
	default:
		panic("texcalc: invalid value node " + tok.String())
	}
}

// pow raises x to the y. Without high accuracy, y is truncated toward zero.
func (c *calc) pow(x, y float64) float64 {
	if c.high {
		return numeric.Pow(x, y)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return math.Pow(x, y)
	}
	t := math.Trunc(y)
	if math.Abs(t) > 1<<62 {
		return math.Pow(x, t)
	}
	return numeric.PowInt(x, int64(t))
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...EvalOption) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	e, err := NewEvaluator(a, opts...)
	if err != nil {
		return 0, err
	}
	return e.Calculate()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...EvalOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a symbol that is neither a number
// nor a variable.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined symbol: " + strconv.Quote(err.Name)
}

// BindingError is an error for a \var binding that is not name=number.
type BindingError struct {
	// Binding is the text of the binding.
	Binding string
	// Reason describes the problem.
	Reason string
}

func (err *BindingError) Error() string {
	return "malformed binding " + strconv.Quote(err.Binding) + ": " + err.Reason
}

// DepthError is an error for an expression nested more deeply than an
// evaluator allows.
type DepthError struct {
	// Max is the evaluator's depth limit.
	Max int
}

func (err *DepthError) Error() string {
	return "expression nested deeper than " + strconv.Itoa(err.Max) + " levels"
}
