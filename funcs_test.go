package fexpr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinsSorted(t *testing.T) {
	for _, tab := range [][]Binding{builtins, natlogBuiltins} {
		for i := 1; i < len(tab); i++ {
			if tab[i-1].Name >= tab[i].Name {
				t.Errorf("%q sorts before %q", tab[i-1].Name, tab[i].Name)
			}
		}
		for _, b := range tab {
			if err := b.validate(); err != nil {
				t.Errorf("invalid built-in: %v", err)
			}
			if !b.Pure {
				t.Errorf("built-in %s is not pure", b.Name)
			}
		}
	}
}

func TestFindBuiltin(t *testing.T) {
	for _, b := range builtins {
		got, ok := findBuiltin(builtins, b.Name)
		if !ok || got.Name != b.Name {
			t.Errorf("looking up %q found %q, %t", b.Name, got.Name, ok)
		}
	}
	for _, name := range []string{"", "a", "lo", "logg", "log1", "log100", "sinhh", "zzz", "Sin"} {
		if got, ok := findBuiltin(builtins, name); ok {
			t.Errorf("looking up %q found %q", name, got.Name)
		}
	}
	// Exact match, not prefix.
	lg, _ := findBuiltin(builtins, "log")
	l10, _ := findBuiltin(builtins, "log10")
	assert.InDelta(t, 2, lg.Fn.(Fn1)(100), 1e-15)
	assert.InDelta(t, 2, l10.Fn.(Fn1)(100), 1e-15)
	nl, _ := findBuiltin(natlogBuiltins, "log")
	assert.InDelta(t, 1, nl.Fn.(Fn1)(math.E), 1e-15)
}

func TestBuiltinsCopy(t *testing.T) {
	b := Builtins()
	b[0].Name = "changed"
	assert.Equal(t, "abs", builtins[0].Name)
}

func TestSymtabLookup(t *testing.T) {
	var x float64
	s := symtab{
		vars:     []Binding{Var("x", &x), PureFunc("pi", Fn0(func() float64 { return 3 }))},
		builtins: builtins,
	}
	b, ok := s.lookup("x")
	assert.True(t, ok)
	assert.True(t, b.Value == &x)
	b, ok = s.lookup("pi")
	assert.True(t, ok)
	assert.Equal(t, 3.0, b.Fn.(Fn0)())
	b, ok = s.lookup("e")
	assert.True(t, ok)
	assert.Equal(t, math.E, b.Fn.(Fn0)())
	_, ok = s.lookup("y")
	assert.False(t, ok)
}

func TestIsIdent(t *testing.T) {
	good := []string{"a", "x1", "y_1", "abc_def_0", "z__"}
	bad := []string{"", "1", "_a", "A", "aB", "a b", "a-b", "é"}
	for _, s := range good {
		assert.True(t, isIdent(s), "%q", s)
	}
	for _, s := range bad {
		assert.False(t, isIdent(s), "%q", s)
	}
}

func TestCallables(t *testing.T) {
	fns := []Callable{
		Fn0(nil), Fn1(nil), Fn2(nil), Fn3(nil), Fn4(nil), Fn5(nil), Fn6(nil), Fn7(nil),
		Cl0(nil), Cl1(nil), Cl2(nil), Cl3(nil), Cl4(nil), Cl5(nil), Cl6(nil), Cl7(nil),
	}
	for i, f := range fns {
		assert.Equal(t, i%8, f.Arity(), "%T", f)
		assert.Equal(t, i >= 8, f.IsClosure(), "%T", f)
		assert.True(t, f.isNil(), "%T", f)
	}
}

func TestFac(t *testing.T) {
	cases := []struct {
		a, r float64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 120},
		{5.9, 120},
		{10, 3628800},
		{20, 2432902008176640000},
		{21, math.Inf(1)},
		{1e10, math.Inf(1)},
		{math.Inf(1), math.Inf(1)},
		{-1, math.NaN()},
		{-0.5, math.NaN()},
		{math.Inf(-1), math.NaN()},
		{math.NaN(), math.NaN()},
	}
	for _, c := range cases {
		r := fac(c.a)
		if r != c.r && !(math.IsNaN(r) && math.IsNaN(c.r)) {
			t.Errorf("fac(%g): want %g, got %g", c.a, c.r, r)
		}
	}
}

func TestNcrNpr(t *testing.T) {
	cases := []struct {
		n, r     float64
		ncr, npr float64
	}{
		{0, 0, 1, 1},
		{5, 0, 1, 1},
		{5, 5, 1, 120},
		{5, 2, 10, 20},
		{5.5, 2.5, 10, 20},
		{10, 3, 120, 720},
		{52, 5, 2598960, 311875200},
		{60, 30, 118264581564861424, math.Inf(1)},
		{200, 100, math.Inf(1), math.Inf(1)},
		{2, 3, math.NaN(), math.NaN()},
		{-1, 0, math.NaN(), math.NaN()},
		{1, -1, math.NaN(), math.NaN()},
		{math.NaN(), 1, math.NaN(), math.NaN()},
	}
	for _, c := range cases {
		r := ncr(c.n, c.r)
		if r != c.ncr && !(math.IsNaN(r) && math.IsNaN(c.ncr)) {
			t.Errorf("ncr(%g, %g): want %g, got %g", c.n, c.r, c.ncr, r)
		}
		r = npr(c.n, c.r)
		if r != c.npr && !(math.IsNaN(r) && math.IsNaN(c.npr)) {
			t.Errorf("npr(%g, %g): want %g, got %g", c.n, c.r, c.npr, r)
		}
	}
}
