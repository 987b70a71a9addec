package texcalc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/texcalc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add(`\frac{1}{2} + \sqrt[3]{4}`)
	f.Add(`\int^b_a{1}{2}{3}`)
	f.Add(`2^{n+1}\var{n=2}`)
	f.Add("{{a}+{b}}")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := texcalc.Parse(strings.NewReader(s))
		if err != nil {
			var ie texcalc.InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q: error %T is not an InputError", s, err)
			}
			return
		}
		// Printing never panics.
		_ = a.String()
	})
}
