package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/fexpr"
)

// readVars decodes a YAML mapping of variable names to numbers.
func readVars(r io.Reader) (map[string]float64, error) {
	m := make(map[string]float64)
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return m, nil
}

// loadVars reads a variables file.
func loadVars(name string) (map[string]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := readVars(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return m, nil
}

// parseGiven evaluates name=value definitions into m. Values are
// expressions without variables.
func parseGiven(m map[string]float64, defs []string, opts ...fexpr.Option) error {
	for _, s := range defs {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		name := strings.TrimSpace(d[0])
		r, err := fexpr.Interpret(d[1], opts...)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		m[name] = r
	}
	return nil
}

// bind creates sorted variable bindings with their own storage.
func bind(m map[string]float64) ([]fexpr.Binding, error) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	vals := make([]float64, len(names))
	vars := make([]fexpr.Binding, len(names))
	for i, name := range names {
		vals[i] = m[name]
		vars[i] = fexpr.Var(name, &vals[i])
	}
	// Compiling anything checks the bindings.
	e, err := fexpr.Compile("0", vars)
	if err != nil {
		return nil, err
	}
	e.Free()
	return vars, nil
}
