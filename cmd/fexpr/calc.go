package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zephyrtronium/fexpr"
)

// calc evaluates expressions with a fixed set of variables and options.
type calc struct {
	vars []fexpr.Binding
	opts []fexpr.Option
	verb string
	echo bool
}

func newCalc(conf *config) (*calc, error) {
	c := calc{verb: conf.verb + "\n", echo: conf.echo}
	if conf.powright {
		c.opts = append(c.opts, fexpr.PowFromRight())
	}
	if conf.natlog {
		c.opts = append(c.opts, fexpr.NaturalLog())
	}
	m := make(map[string]float64)
	if conf.vars != "" {
		v, err := loadVars(conf.vars)
		if err != nil {
			return nil, err
		}
		m = v
	}
	if err := parseGiven(m, conf.given, c.opts...); err != nil {
		return nil, err
	}
	vars, err := bind(m)
	if err != nil {
		return nil, err
	}
	c.vars = vars
	return &c, nil
}

// eval compiles and evaluates src, writing its value to w. If src is invalid,
// eval instead writes src with a caret under the error position, followed by
// the error, and returns the error.
func (c *calc) eval(w io.Writer, src string) error {
	e, err := fexpr.Compile(src, c.vars, c.opts...)
	if err != nil {
		fmt.Fprintf(w, "\t%s\n\t%*s^\n%v\n", src, fexpr.ErrorPos(err)-1, "", err)
		return err
	}
	defer e.Free()
	if c.echo {
		fmt.Fprintf(w, "%v : ", e)
	}
	fmt.Fprintf(w, c.verb, e.Eval())
	return nil
}

// lines evaluates each non-blank line of r.
func (c *calc) lines(w io.Writer, r io.Reader) error {
	var failed error
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if c.eval(w, line) != nil {
			failed = errFailed
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return failed
}
