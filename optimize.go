package fexpr

// optimize folds constant subexpressions in place. It visits every child
// before the node itself. A function or closure node is folded if it is pure
// and all its args are constants after folding.
func optimize(n *node) {
	switch n.kind {
	case nodeConst, nodeVar:
		return
	}
	known := true
	for _, a := range n.args {
		optimize(a)
		if a.kind != nodeConst {
			known = false
		}
	}
	if !n.pure || !known {
		return
	}
	v := n.eval()
	tracer().Debugf("fexpr: folded %s/%d to %g", n.name, n.arity, v)
	n.free()
	n.kind = nodeConst
	n.value = v
}
