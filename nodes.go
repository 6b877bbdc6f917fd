package fexpr

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// node is a node in the compiled tree of an expression.
type node struct {
	kind nodeKind
	// arity is the number of args of a function or closure.
	arity int8
	// pure marks functions and closures that the optimizer may fold.
	pure bool

	// name is the symbol or operator that created the node.
	name string

	value float64
	bound *float64
	fn    Callable
	// ctx is the context of a closure. It is not a child.
	ctx interface{}

	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeConst   // value
	nodeVar     // *bound
	nodeFunc    // fn(args...)
	nodeClosure // fn(ctx, args...)
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeConst:
		return "Const"
	case nodeVar:
		return "Var"
	case nodeFunc:
		return "Func"
	case nodeClosure:
		return "Closure"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// call creates a function or closure node for a binding, with room for its
// arguments.
func call(b Binding) *node {
	n := &node{
		kind:  nodeFunc,
		arity: int8(b.Fn.Arity()),
		pure:  b.Pure,
		name:  b.Name,
		fn:    b.Fn,
	}
	if b.Fn.IsClosure() {
		n.kind = nodeClosure
		n.ctx = b.Context
	}
	if n.arity > 0 {
		n.args = make([]*node, n.arity)
	}
	return n
}

// operator creates a pure node for a parser-generated operator.
func operator(name string, fn Callable, args ...*node) *node {
	return &node{
		kind:  nodeFunc,
		arity: int8(len(args)),
		pure:  true,
		name:  name,
		fn:    fn,
		args:  args,
	}
}

// nan creates a placeholder for a missing subexpression.
func nan() *node {
	return &node{kind: nodeConst, value: math.NaN()}
}

// free releases the node's children, exactly as many as its arity, and then
// the node itself.
func (n *node) free() {
	if n == nil {
		return
	}
	for i := 0; i < int(n.arity) && i < len(n.args); i++ {
		n.args[i].free()
		n.args[i] = nil
	}
	*n = node{}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node in parenthesized infix form. The result compiles to an
// equivalent tree given the same bindings, as long as no constant is infinite
// or NaN.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	case nodeConst:
		b.WriteString(strconv.FormatFloat(n.value, 'g', -1, 64))
	case nodeVar:
		b.WriteString(n.name)
	case nodeFunc, nodeClosure:
		switch {
		case n.arity == 1 && n.name == "-":
			b.WriteByte('-')
			n.args[0].fmt(b)
		case n.arity == 2 && isOperator(n.name):
			n.args[0].fmt(b)
			b.WriteByte(' ')
			b.WriteString(n.name)
			b.WriteByte(' ')
			n.args[1].fmt(b)
		default:
			b.WriteString(n.name)
			n.fmtargs(b)
		}
	default:
		panic("fexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
}

// isOperator reports whether name is the name of a parser-generated binary
// operator node.
func isOperator(name string) bool {
	return len(name) == 1 && (name == "," || strings.Contains(Operators, name))
}

// dump writes one line per node, indenting children one space per level.
func (n *node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(" ", depth))
	switch n.kind {
	case nodeConst:
		fmt.Fprintf(b, "%f\n", n.value)
	case nodeVar:
		fmt.Fprintf(b, "bound %s %p\n", n.name, n.bound)
	case nodeFunc, nodeClosure:
		c := 'f'
		if n.kind == nodeClosure {
			c = 'c'
		}
		fmt.Fprintf(b, "%c%d %s\n", c, n.arity, n.name)
		for _, a := range n.args {
			a.dump(b, depth+1)
		}
	default:
		fmt.Fprintf(b, "%v\n", n.kind)
	}
}

// Print writes a dump of the compiled tree to w for debugging. Each line is a
// node: a constant's value, "bound" and a variable's name and address, or
// "f" or "c" with the arity and name of a function or closure, followed by
// its arguments indented one more space.
func (e *Expr) Print(w io.Writer) error {
	var b strings.Builder
	if e != nil && e.n != nil {
		e.n.dump(&b, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
