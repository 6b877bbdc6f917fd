package fexpr

import (
	"math"
)

// Callable is a native function that expressions can call. The set of
// Callable types is closed: Fn0 through Fn7 are plain functions of zero to
// seven arguments, and Cl0 through Cl7 are closures of zero to seven
// arguments, which additionally receive the context of their Binding as an
// implicit first argument on every call.
type Callable interface {
	// Arity returns the number of arguments the function takes, not counting
	// the context of a closure.
	Arity() int
	// IsClosure returns whether the function takes a context argument.
	IsClosure() bool

	isNil() bool
}

// Function types by arity.
type (
	Fn0 func() float64
	Fn1 func(a float64) float64
	Fn2 func(a, b float64) float64
	Fn3 func(a, b, c float64) float64
	Fn4 func(a, b, c, d float64) float64
	Fn5 func(a, b, c, d, e float64) float64
	Fn6 func(a, b, c, d, e, f float64) float64
	Fn7 func(a, b, c, d, e, f, g float64) float64
)

// Closure types by arity. ctx is the Context of the Binding that introduced
// the closure.
type (
	Cl0 func(ctx interface{}) float64
	Cl1 func(ctx interface{}, a float64) float64
	Cl2 func(ctx interface{}, a, b float64) float64
	Cl3 func(ctx interface{}, a, b, c float64) float64
	Cl4 func(ctx interface{}, a, b, c, d float64) float64
	Cl5 func(ctx interface{}, a, b, c, d, e float64) float64
	Cl6 func(ctx interface{}, a, b, c, d, e, f float64) float64
	Cl7 func(ctx interface{}, a, b, c, d, e, f, g float64) float64
)

func (Fn0) Arity() int { return 0 }
func (Fn1) Arity() int { return 1 }
func (Fn2) Arity() int { return 2 }
func (Fn3) Arity() int { return 3 }
func (Fn4) Arity() int { return 4 }
func (Fn5) Arity() int { return 5 }
func (Fn6) Arity() int { return 6 }
func (Fn7) Arity() int { return 7 }
func (Cl0) Arity() int { return 0 }
func (Cl1) Arity() int { return 1 }
func (Cl2) Arity() int { return 2 }
func (Cl3) Arity() int { return 3 }
func (Cl4) Arity() int { return 4 }
func (Cl5) Arity() int { return 5 }
func (Cl6) Arity() int { return 6 }
func (Cl7) Arity() int { return 7 }

func (Fn0) IsClosure() bool { return false }
func (Fn1) IsClosure() bool { return false }
func (Fn2) IsClosure() bool { return false }
func (Fn3) IsClosure() bool { return false }
func (Fn4) IsClosure() bool { return false }
func (Fn5) IsClosure() bool { return false }
func (Fn6) IsClosure() bool { return false }
func (Fn7) IsClosure() bool { return false }
func (Cl0) IsClosure() bool { return true }
func (Cl1) IsClosure() bool { return true }
func (Cl2) IsClosure() bool { return true }
func (Cl3) IsClosure() bool { return true }
func (Cl4) IsClosure() bool { return true }
func (Cl5) IsClosure() bool { return true }
func (Cl6) IsClosure() bool { return true }
func (Cl7) IsClosure() bool { return true }

func (f Fn0) isNil() bool { return f == nil }
func (f Fn1) isNil() bool { return f == nil }
func (f Fn2) isNil() bool { return f == nil }
func (f Fn3) isNil() bool { return f == nil }
func (f Fn4) isNil() bool { return f == nil }
func (f Fn5) isNil() bool { return f == nil }
func (f Fn6) isNil() bool { return f == nil }
func (f Fn7) isNil() bool { return f == nil }
func (f Cl0) isNil() bool { return f == nil }
func (f Cl1) isNil() bool { return f == nil }
func (f Cl2) isNil() bool { return f == nil }
func (f Cl3) isNil() bool { return f == nil }
func (f Cl4) isNil() bool { return f == nil }
func (f Cl5) isNil() bool { return f == nil }
func (f Cl6) isNil() bool { return f == nil }
func (f Cl7) isNil() bool { return f == nil }

// Operators. The parser creates pure nodes for these directly; they never go
// through the symbol table.
var (
	add    = Fn2(func(a, b float64) float64 { return a + b })
	sub    = Fn2(func(a, b float64) float64 { return a - b })
	mul    = Fn2(func(a, b float64) float64 { return a * b })
	divide = Fn2(func(a, b float64) float64 { return a / b })
	negate = Fn1(func(a float64) float64 { return -a })
	comma  = Fn2(func(a, b float64) float64 { return b })
)

// infixfns maps each infix operator byte to its function.
var infixfns = map[byte]Fn2{
	'+': add,
	'-': sub,
	'*': mul,
	'/': divide,
	'%': math.Mod,
	'^': math.Pow,
}

// builtins is the default function table. It must stay in byte-wise
// alphabetical order for findBuiltin.
var builtins = []Binding{
	{Name: "abs", Fn: Fn1(math.Abs), Pure: true},
	{Name: "acos", Fn: Fn1(math.Acos), Pure: true},
	{Name: "asin", Fn: Fn1(math.Asin), Pure: true},
	{Name: "atan", Fn: Fn1(math.Atan), Pure: true},
	{Name: "atan2", Fn: Fn2(math.Atan2), Pure: true},
	{Name: "ceil", Fn: Fn1(math.Ceil), Pure: true},
	{Name: "cos", Fn: Fn1(math.Cos), Pure: true},
	{Name: "cosh", Fn: Fn1(math.Cosh), Pure: true},
	{Name: "e", Fn: Fn0(func() float64 { return math.E }), Pure: true},
	{Name: "exp", Fn: Fn1(math.Exp), Pure: true},
	{Name: "fac", Fn: Fn1(fac), Pure: true},
	{Name: "floor", Fn: Fn1(math.Floor), Pure: true},
	{Name: "ln", Fn: Fn1(math.Log), Pure: true},
	{Name: "log", Fn: Fn1(math.Log10), Pure: true},
	{Name: "log10", Fn: Fn1(math.Log10), Pure: true},
	{Name: "ncr", Fn: Fn2(ncr), Pure: true},
	{Name: "npr", Fn: Fn2(npr), Pure: true},
	{Name: "pi", Fn: Fn0(func() float64 { return math.Pi }), Pure: true},
	{Name: "pow", Fn: Fn2(math.Pow), Pure: true},
	{Name: "sin", Fn: Fn1(math.Sin), Pure: true},
	{Name: "sinh", Fn: Fn1(math.Sinh), Pure: true},
	{Name: "sqrt", Fn: Fn1(math.Sqrt), Pure: true},
	{Name: "tan", Fn: Fn1(math.Tan), Pure: true},
	{Name: "tanh", Fn: Fn1(math.Tanh), Pure: true},
}

// natlogBuiltins is builtins with log as the natural logarithm.
var natlogBuiltins = func() []Binding {
	v := append([]Binding(nil), builtins...)
	for i := range v {
		if v[i].Name == "log" {
			v[i].Fn = Fn1(math.Log)
		}
	}
	return v
}()

// Builtins returns a copy of the default function table in alphabetical
// order.
func Builtins() []Binding {
	return append([]Binding(nil), builtins...)
}

// fac computes a factorial over the integer part of a. The result is NaN for
// negative a and +Inf when the product does not fit in 64 bits.
func fac(a float64) float64 {
	if math.IsNaN(a) || a < 0 {
		return math.NaN()
	}
	if a > math.MaxUint32 {
		return math.Inf(1)
	}
	ua := uint64(uint32(a))
	var r uint64 = 1
	for i := uint64(1); i <= ua; i++ {
		if i > math.MaxUint64/r {
			return math.Inf(1)
		}
		r *= i
	}
	return float64(r)
}

// ncr counts combinations of r items chosen from n over the integer parts of
// its arguments.
func ncr(n, r float64) float64 {
	if math.IsNaN(n) || math.IsNaN(r) || n < 0 || r < 0 || n < r {
		return math.NaN()
	}
	if n > math.MaxUint32 || r > math.MaxUint32 {
		return math.Inf(1)
	}
	un, ur := uint64(uint32(n)), uint64(uint32(r))
	if ur > un/2 {
		ur = un - ur
	}
	var res uint64 = 1
	for i := uint64(1); i <= ur; i++ {
		k := un - ur + i
		if res > math.MaxUint64/k {
			return math.Inf(1)
		}
		res *= k
		res /= i
	}
	return float64(res)
}

// npr counts permutations of r items chosen from n.
func npr(n, r float64) float64 {
	return ncr(n, r) * fac(r)
}
