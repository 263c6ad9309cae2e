package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScanSymbols_SkipsNumericLiterals verifies exponents are not read as symbols.
func TestScanSymbols_SkipsNumericLiterals(t *testing.T) {
	toks := scanSymbols("1e-5*M1.c + 2.5E3/e + .5*x_1")
	var got []string
	for _, tk := range toks {
		got = append(got, tk.text)
	}
	assert.Equal(t, []string{"M1.c", "e", "x_1"}, got)
}

// TestRewrite replaces tokens in place.
func TestRewrite(t *testing.T) {
	src := "2*M1.c+sqrt(a)"
	toks := scanSymbols(src)
	out := rewrite(src, toks, func(s string) string { return "<" + s + ">" })
	assert.Equal(t, "2*<M1.c>+<sqrt>(<a>)", out)
}
