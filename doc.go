// Package fexpr compiles arithmetic expressions over float64 into trees that
// can be evaluated quickly and repeatedly.
//
// The syntax is the usual one: "+ - * / % ^" with the usual precedence,
// parentheses, and calls like "atan2(y, x)". Functions of one argument need
// no parentheses, so "sqrt x" is "sqrt(x)", and functions of no arguments may
// omit them, so "pi" is "pi()". A comma outside of a call evaluates both sides
// and yields the right one.
//
// Variables are bound to float64 storage when compiling, so an expression can
// be compiled once and evaluated for many inputs by changing the storage
// between calls to Eval. Callers can also bind their own functions and
// closures of up to seven arguments, which shadow the built-in ones.
//
package fexpr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fexpr'.
func tracer() tracing.Trace {
	return tracing.Select("fexpr")
}
