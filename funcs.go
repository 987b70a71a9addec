package texcalc

import (
	"strconv"

	"github.com/zephyrtronium/texcalc/numeric"
)

// Func is a function callable from an expression as \name[opt]{req}.
// Arguments arrive as numbers in the order they were written; bracketed
// arguments are in opt and braced ones in req. Argument counts are not checked
// before the call, so a Func must check them itself. For a big operator like
// \sum_a^b, opt is exactly the subscript and superscript.
//
// If the function has no result for its arguments, it should return a
// *DomainError.
type Func interface {
	Call(opt, req []float64) (float64, error)
}

// FuncOf adapts an ordinary function to a Func.
type FuncOf func(opt, req []float64) (float64, error)

// Call calls f(opt, req).
func (f FuncOf) Call(opt, req []float64) (float64, error) {
	return f(opt, req)
}

// builtins are the functions available in every catalog. They take priority
// over any registered function of the same name. builtins is never modified.
var builtins = map[string]Func{
	"frac": FuncOf(frac),
	"sqrt": FuncOf(sqrt),
	"int":  FuncOf(simpson),
	"sum":  FuncOf(sum),
	"prod": FuncOf(prod),
}

func frac(opt, req []float64) (float64, error) {
	if len(req) != 2 {
		return 0, arity("frac", "2 required", len(req))
	}
	if req[1] == 0 {
		return 0, &DomainError{Func: "frac", Arg: 2, X: req[1], Reason: "division by zero"}
	}
	return req[0] / req[1], nil
}

// sqrt computes \sqrt[n]{x}. n defaults to 2.
func sqrt(opt, req []float64) (float64, error) {
	if len(opt) > 1 {
		return 0, arity("sqrt", "at most 1 optional", len(opt))
	}
	if len(req) != 1 {
		return 0, arity("sqrt", "1 required", len(req))
	}
	n := 2.0
	if len(opt) == 1 {
		n = opt[0]
	}
	r, ok := numeric.Root(req[0], n)
	if !ok {
		return 0, &DomainError{Func: "sqrt", Arg: 1, X: req[0], Reason: "no real root of index " + strconv.FormatFloat(n, 'g', -1, 64)}
	}
	return r, nil
}

// simpson integrates by Simpson's rule over [lo, hi] from samples of the
// integrand at lo, the midpoint, and hi:
//
//	(hi-lo)/6 * (f(lo) + 4f(mid) + f(hi))
func simpson(opt, req []float64) (float64, error) {
	if len(opt) != 2 {
		return 0, arity("int", "2 bound", len(opt))
	}
	if len(req) < 3 {
		return 0, &DomainError{Func: "int", Reason: "needs 3 samples, got " + strconv.Itoa(len(req))}
	}
	lo, hi := opt[0], opt[1]
	return (hi - lo) / 6 * (req[0] + 4*req[1] + req[2]), nil
}

func sum(opt, req []float64) (float64, error) {
	if len(req) == 0 {
		return 0, &DomainError{Func: "sum", Reason: "nothing to sum"}
	}
	var r float64
	for _, v := range req {
		r += v
	}
	return r, nil
}

func prod(opt, req []float64) (float64, error) {
	if len(req) == 0 {
		return 0, &DomainError{Func: "prod", Reason: "nothing to multiply"}
	}
	r := 1.0
	for _, v := range req {
		r *= v
	}
	return r, nil
}

// SimpsonSamples samples f where \int_{lo}^{hi} reads its integrand: at lo,
// the midpoint, and hi.
func SimpsonSamples(f func(float64) float64, lo, hi float64) []float64 {
	return []float64{f(lo), f(lo + (hi-lo)/2), f(hi)}
}

// SumSamples samples f at each integer from lo to hi inclusive, giving the
// terms of \sum_{lo}^{hi} or \prod_{lo}^{hi}. The result is nil if lo > hi.
func SumSamples(f func(int) float64, lo, hi int) []float64 {
	if lo > hi {
		return nil
	}
	var r []float64
	for i := lo; ; i++ {
		r = append(r, f(i))
		if i == hi {
			return r
		}
	}
}

func arity(name, want string, got int) error {
	return &DomainError{Func: name, Reason: "wants " + want + " arguments, got " + strconv.Itoa(got)}
}

// DomainError is an error returned when a function is called on arguments
// outside its domain, including the wrong number of arguments.
type DomainError struct {
	// Func is the name of the function.
	Func string
	// Arg is the 1-based index of the out-of-domain required argument, or 0 if
	// the problem is not with a single argument.
	Arg int
	// X is the out-of-domain argument if Arg is positive.
	X float64
	// Reason describes the problem.
	Reason string
}

func (err *DomainError) Error() string {
	r := err.Func + ": " + err.Reason
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + " is " + strconv.FormatFloat(err.X, 'g', -1, 64) + ")"
	}
	return r
}

// ArgError is an error indicating a function argument that is not a number.
// Arguments are never looked up as variables.
type ArgError struct {
	// Func is the name of the function.
	Func string
	// Arg is the 1-based index of the argument among its kind.
	Arg int
	// Optional is whether the argument is bracketed rather than braced.
	Optional bool
	// Text is the text of the argument.
	Text string
}

func (err *ArgError) Error() string {
	kind := "required"
	if err.Optional {
		kind = "optional"
	}
	return err.Func + ": " + kind + " argument " + strconv.Itoa(err.Arg) + " is not a number: " + strconv.Quote(err.Text)
}

// FuncError is an error from a lookup for a function that is neither built in
// nor registered.
type FuncError struct {
	// Name is the name that was missing.
	Name string
}

func (err *FuncError) Error() string {
	return `unknown function: \` + err.Name
}
