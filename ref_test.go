package fexpr_test

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/fexpr"
)

// refprec is the precision of the reference evaluator. It matches float64 so
// that arithmetic rounds the same way.
const refprec = 53

// refeval is a second, independent evaluator for the subset of the syntax
// that genexpr produces, computing with big.Float. Its result is not ok if
// any intermediate value is infinite or undefined.
type refeval struct {
	toks     []string
	powright bool
	ok       bool
}

func newref(src string, powright bool) *refeval {
	var toks []string
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ':
			i++
		case '0' <= c && c <= '9' || c == '.':
			j := i
			for j < len(src) && ('0' <= src[j] && src[j] <= '9' || src[j] == '.') {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		case 'a' <= c && c <= 'z':
			j := i
			for j < len(src) && 'a' <= src[j] && src[j] <= 'z' {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		default:
			toks = append(toks, src[i:i+1])
			i++
		}
	}
	return &refeval{toks: toks, powright: powright, ok: true}
}

func (r *refeval) peek() string {
	if len(r.toks) == 0 {
		return ""
	}
	return r.toks[0]
}

func (r *refeval) take() string {
	t := r.peek()
	if len(r.toks) > 0 {
		r.toks = r.toks[1:]
	}
	return t
}

func (r *refeval) check(z *big.Float) *big.Float {
	if z.IsInf() {
		r.ok = false
		return new(big.Float).SetPrec(refprec)
	}
	return z
}

func (r *refeval) expr() *big.Float {
	z := r.term()
	for r.ok && (r.peek() == "+" || r.peek() == "-") {
		op := r.take()
		y := r.term()
		if !r.ok {
			break
		}
		if op == "+" {
			z = r.check(z.Add(z, y))
		} else {
			z = r.check(z.Sub(z, y))
		}
	}
	return z
}

func (r *refeval) term() *big.Float {
	z := r.factor()
	for r.ok && (r.peek() == "*" || r.peek() == "/") {
		op := r.take()
		y := r.factor()
		if !r.ok {
			break
		}
		if op == "*" {
			z = r.check(z.Mul(z, y))
		} else {
			if y.Sign() == 0 {
				r.ok = false
				break
			}
			z = r.check(z.Quo(z, y))
		}
	}
	return z
}

// factor applies a leading sign to the whole chain of exponentiations.
func (r *refeval) factor() *big.Float {
	neg := r.signs()
	ops := []*big.Float{r.atom()}
	for r.ok && r.peek() == "^" {
		r.take()
		neg := r.signs()
		x := r.atom()
		if neg {
			x.Neg(x)
		}
		ops = append(ops, x)
	}
	var z *big.Float
	if r.powright {
		z = ops[len(ops)-1]
		for i := len(ops) - 2; i >= 0 && r.ok; i-- {
			z = r.pow(ops[i], z)
		}
	} else {
		z = ops[0]
		for i := 1; i < len(ops) && r.ok; i++ {
			z = r.pow(z, ops[i])
		}
	}
	if neg {
		z.Neg(z)
	}
	return z
}

func (r *refeval) signs() bool {
	neg := false
	for r.peek() == "-" || r.peek() == "+" {
		if r.take() == "-" {
			neg = !neg
		}
	}
	return neg
}

func (r *refeval) pow(x, y *big.Float) *big.Float {
	if x.Sign() <= 0 {
		r.ok = false
		return x
	}
	z := new(big.Float).SetPrec(refprec)
	return r.check(bigfloat.Pow(z, x, y))
}

func (r *refeval) atom() *big.Float {
	z := new(big.Float).SetPrec(refprec)
	t := r.take()
	switch t {
	case "(":
		z = r.expr()
		r.take()
	case "pi":
		bigfloat.Pi(z)
	case "e":
		bigfloat.Exp(z, big.NewFloat(1))
	case "exp", "ln", "sqrt":
		r.take()
		x := r.expr()
		r.take()
		switch {
		case !r.ok:
		case t == "exp":
			r.check(bigfloat.Exp(z, x))
		case x.Sign() <= 0:
			r.ok = false
		case t == "ln":
			bigfloat.Log(z, x)
		default:
			z.Sqrt(x)
		}
	default:
		if _, ok := z.SetString(t); !ok {
			panic("bad reference token " + t)
		}
	}
	return z
}

// genexpr generates a random expression in which every exponentiation and
// logarithm has a positive base.
func genexpr(rng *rand.Rand, depth int) string {
	num := func() string {
		return fmt.Sprintf("%.3g", 0.5+rng.Float64()*9.5)
	}
	pos := func() string {
		switch rng.Intn(4) {
		case 0:
			return "pi"
		case 1:
			return "e"
		default:
			return num()
		}
	}
	if depth <= 0 {
		return pos()
	}
	switch rng.Intn(9) {
	case 0:
		return pos()
	case 1:
		return "(" + genexpr(rng, depth-1) + ")"
	case 2:
		return "-" + genexpr(rng, depth-1)
	case 3:
		chain := pos()
		for i := rng.Intn(3); i >= 0; i-- {
			chain += "^" + fmt.Sprintf("%.2f", rng.Float64()*2)
		}
		return chain
	case 4:
		fns := []string{"exp", "ln", "sqrt"}
		return fns[rng.Intn(len(fns))] + "(" + pos() + ")"
	default:
		ops := []string{" + ", " - ", " * ", " / "}
		return genexpr(rng, depth-1) + ops[rng.Intn(len(ops))] + genexpr(rng, depth-1)
	}
}

func TestReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	checked := 0
	for i := 0; i < 500; i++ {
		src := genexpr(rng, 4)
		for _, powright := range []bool{false, true} {
			var opts []fexpr.Option
			if powright {
				opts = append(opts, fexpr.PowFromRight())
			}
			got, err := fexpr.Interpret(src, opts...)
			if err != nil {
				t.Errorf("couldn't interpret %q: %v", src, err)
				continue
			}
			ref := newref(src, powright)
			z := ref.expr()
			if !ref.ok {
				continue
			}
			want, _ := z.Float64()
			if math.IsInf(got, 0) || math.IsNaN(got) || math.Abs(want) > 1e12 {
				continue
			}
			checked++
			if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
				t.Errorf("%q (right=%t): reference gives %.17g, got %.17g", src, powright, want, got)
			}
		}
	}
	if checked < 100 {
		t.Errorf("only %d expressions were comparable", checked)
	}
}

func TestReferenceSelf(t *testing.T) {
	cases := []struct {
		src      string
		powright bool
		want     float64
	}{
		{"2 * 3 + 4", false, 10},
		{"2^3^2", false, 64},
		{"2^3^2", true, 512},
		{"-2^2", false, -4},
		{"-2^2", true, -4},
		{"(2 + 3) / 5", false, 1},
		{"sqrt(16) - ln(e)", false, 3},
	}
	for _, c := range cases {
		r := newref(c.src, c.powright)
		z := r.expr()
		f, _ := z.Float64()
		if !r.ok || math.Abs(f-c.want) > 1e-12 || strings.Join(r.toks, "") != "" {
			t.Errorf("reference %q (right=%t): want %g, got %g (ok=%t, rest %q)", c.src, c.powright, c.want, f, r.ok, r.toks)
		}
	}
}

// genarith generates a fully parenthesized expression using only numbers and
// the operators "+ - * / %", which any evaluator should agree on.
func genarith(rng *rand.Rand, depth int) string {
	if depth <= 0 || rng.Intn(4) == 0 {
		return fmt.Sprintf("%.3g", 0.5+rng.Float64()*9.5)
	}
	if rng.Intn(5) == 0 {
		return "-(" + genarith(rng, depth-1) + ")"
	}
	ops := []string{" + ", " - ", " * ", " / ", " % "}
	return "(" + genarith(rng, depth-1) + ops[rng.Intn(len(ops))] + genarith(rng, depth-1) + ")"
}

func TestGovaluate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 300; i++ {
		src := genarith(rng, 5)
		ge, err := govaluate.NewEvaluableExpression(src)
		if err != nil {
			t.Fatalf("govaluate couldn't parse %q: %v", src, err)
		}
		v, err := ge.Evaluate(nil)
		if err != nil {
			t.Fatalf("govaluate couldn't evaluate %q: %v", src, err)
		}
		want, ok := v.(float64)
		if !ok {
			t.Fatalf("govaluate evaluated %q to %T", src, v)
		}
		got, err := fexpr.Interpret(src)
		if err != nil {
			t.Errorf("couldn't interpret %q: %v", src, err)
			continue
		}
		if !near(got, want) {
			t.Errorf("%q: govaluate gives %.17g, got %.17g", src, want, got)
		}
	}
}
