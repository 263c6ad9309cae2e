package expression

import (
	"math"
	"strings"
)

// Context maps symbol names to float64 constants or to float64 functions of
// one or two arguments.
type Context map[string]any

// builtins are identifiers the evaluator understands without a context entry.
var builtins = map[string]struct{}{
	"abs": {}, "min": {}, "max": {}, "floor": {}, "ceil": {}, "round": {},
	"true": {}, "false": {}, "and": {}, "or": {}, "not": {},
}

// StandardSymbols returns the mathematical constants and functions available
// to every constraint, overlaid with ctx.
func StandardSymbols(ctx Context) Context {
	out := Context{
		"pi":      math.Pi,
		"e":       math.E,
		"inf":     math.Inf(1),
		"sin":     math.Sin,
		"cos":     math.Cos,
		"tan":     math.Tan,
		"asin":    math.Asin,
		"acos":    math.Acos,
		"atan":    math.Atan,
		"atan2":   math.Atan2,
		"arcsin":  math.Asin,
		"arccos":  math.Acos,
		"arctan":  math.Atan,
		"arctan2": math.Atan2,
		"sinh":    math.Sinh,
		"cosh":    math.Cosh,
		"tanh":    math.Tanh,
		"exp":     math.Exp,
		"log":     math.Log,
		"log10":   math.Log10,
		"sqrt":    math.Sqrt,
		"pow":     math.Pow,
		"hypot":   math.Hypot,
		"degrees": func(r float64) float64 { return r * 180 / math.Pi },
		"radians": func(d float64) float64 { return d * math.Pi / 180 },
	}
	for k, v := range ctx {
		out[k] = v
	}

	return out
}

// token is a symbol occurrence inside an expression.
type token struct {
	start, end int
	text       string
}

// scanSymbols returns the symbols of src: runs matching [a-zA-Z_][a-zA-Z_0-9.]*
// that are not part of a numeric literal such as 1e-5 or 2.5E3.
func scanSymbols(src string) []token {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			i = skipNumber(src, i)
		case isIdentStart(c):
			j := i + 1
			for j < len(src) && (isIdentStart(src[j]) || isDigit(src[j]) || src[j] == '.') {
				j++
			}
			text := strings.TrimRight(src[i:j], ".")
			toks = append(toks, token{start: i, end: i + len(text), text: text})
			i = j
		default:
			i++
		}
	}

	return toks
}

// skipNumber returns the index just past the numeric literal starting at i.
func skipNumber(src string, i int) int {
	for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
		i++
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			i = j
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		}
	}

	return i
}

// rewrite replaces each token of src by rename(token).
func rewrite(src string, toks []token, rename func(string) string) string {
	var b strings.Builder
	last := 0
	for _, t := range toks {
		b.WriteString(src[last:t.start])
		b.WriteString(rename(t.text))
		last = t.end
	}
	b.WriteString(src[last:])

	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
