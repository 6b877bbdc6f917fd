package fexpr

import (
	"errors"
	"strconv"
)

// NameError is an error indicating an identifier that is neither bound by
// the caller nor a built-in function. It implements InputError.
type NameError struct {
	// Name is the unresolved identifier.
	Name string
	// Col is the position of the end of the identifier.
	Col int
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined name "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token that is invalid where it
// appears, including input following a complete expression. It implements
// InputError.
type TokenError struct {
	// Col is the position of the end of the token.
	Col int
	// Got is the unexpected token, or the empty string at the end of input.
	Got string
	// Want is the token the parser required, if there was exactly one.
	Want string
}

func (err *TokenError) Error() string {
	got := "end of input"
	if err.Got != "" {
		got = strconv.Quote(err.Got)
	}
	if err.Want == "" {
		return errpos(err.Col, "unexpected "+got)
	}
	return errpos(err.Col, "unexpected "+got+", want "+strconv.Quote(err.Want))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the token that ended the call.
	Col int
	// Func is the function name that was called.
	Func string
	// Arity is the number of arguments the function takes.
	Arity int
	// Len is the number of arguments the call supplied, as far as the parser
	// read it.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (want "+strconv.Itoa(err.Arity)+")")
}

func (err *CallError) Pos() int {
	return err.Col
}

// BindingError is an error indicating an invalid Binding passed to Compile.
// It implements InputError with a position of 1.
type BindingError struct {
	// Name is the name of the binding.
	Name string
	// Reason describes the problem.
	Reason string
}

func (err *BindingError) Error() string {
	return "invalid binding " + strconv.Quote(err.Name) + ": " + err.Reason
}

func (err *BindingError) Pos() int {
	return 1
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte offset into the source up to which the
	// compiler had read when it detected the error. It is never 0.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*BindingError)(nil)
)

// ErrorPos returns the error offset of a Compile result: 0 for a nil error,
// the position of an InputError, or 1 for any other error.
func ErrorPos(err error) int {
	if err == nil {
		return 0
	}
	var ie InputError
	if errors.As(err, &ie) {
		if p := ie.Pos(); p > 0 {
			return p
		}
	}
	return 1
}
