// Package texcalc evaluates small LaTeX math snippets to a number.
//
// The accepted notation is the subset you'd write inline in a paper:
// "\frac{1}{2} + \sqrt[3]{4}" is a sum of two function calls, "a^2" is a
// power, and "\int_0^1{0}{0.25}{1}" integrates three samples by Simpson's
// rule. Variables can be bound in the snippet itself with \var, as in
// "a+1\var{a=1}", or supplied by the host with SetVar.
//
// Evaluation is a pipeline. Lex turns text into a Proto of tokens, Postfix
// reorders it, Build makes a tree, and an Evaluator walks the tree. Parse and
// EvalString run the whole thing at once.
//
// Functions are looked up in a Catalog. The built-ins always win, so
// registering an extension under a built-in name has no effect.
package texcalc
