package texcalc

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// known is a value that can report a number: either a numeric literal or a
// reference to a variable. name is empty for literals.
type known struct {
	name string
	num  float64
}

// decimal matches signed decimal literals like -2, 0.5, and .5.
var decimal = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)$`)

// parseNum parses text as a signed decimal literal. Literals too large for a
// float64 are infinite.
func parseNum(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if !decimal.MatchString(text) {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// knownOf classifies text as a literal or a variable reference.
func knownOf(text string) known {
	if f, ok := parseNum(text); ok {
		return known{num: f}
	}
	return known{name: strings.TrimSpace(text)}
}

// value resolves k against a set of variables.
func (k known) value(vars map[string]float64) (float64, error) {
	if k.name == "" {
		return k.num, nil
	}
	v, ok := vars[k.name]
	if !ok {
		return 0, &NameError{Name: k.name}
	}
	return v, nil
}

// args converts function argument texts to numbers. Only literals are
// accepted; arguments do not refer to variables.
func args(fn string, texts []string, optional bool) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	r := make([]float64, len(texts))
	for i, text := range texts {
		k := knownOf(text)
		if k.name != "" {
			return nil, &ArgError{Func: fn, Arg: i + 1, Optional: optional, Text: text}
		}
		r[i] = k.num
	}
	return r, nil
}
