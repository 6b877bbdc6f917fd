// Command fexpr evaluates arithmetic expressions.
//
// With -e or positional arguments, fexpr evaluates each expression and prints
// its value. Otherwise, it reads expressions line by line from standard
// input, interactively if that is a terminal.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/fexpr"
)

var rootCmd = &cobra.Command{
	Use:   "fexpr [expression ...]",
	Short: "Evaluate arithmetic expressions",
	Long: `fexpr compiles and evaluates arithmetic expressions over float64.

Expressions use + - * / % ^ with the usual precedence, parentheses, and calls
to built-in functions like sqrt x or atan2(y, x). Variables can be defined
with --given name=value or in a YAML file with --vars. Environment variables
named FEXPR_ and the option name, like FEXPR_NATURAL_LOG=true, set defaults.
`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runFexpr,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errFailed reports that some expression was invalid. The expression's error
// has already been printed.
var errFailed = errors.New("fexpr: some expressions failed")

func init() {
	addFlags(rootCmd.Flags())
}

func addFlags(f *pflag.FlagSet) {
	f.StringP("eval", "e", "", "evaluate an expression and exit")
	f.StringSlice("given", nil, "name=value variable definition (any number of times)")
	f.String("vars", "", "YAML file mapping variable names to values")
	f.String("fmt", "%g", "result formatting string")
	f.Bool("echo", false, "print compiled expressions with their results")
	f.Bool("pow-from-right", false, "evaluate a^b^c as a^(b^c)")
	f.Bool("natural-log", false, "make log the natural logarithm")
	f.Bool("builtins", false, "list the built-in functions and exit")
	f.Bool("debug", false, "trace the compiler")
}

func main() {
	log.SetFlags(0)
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFailed) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func runFexpr(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if conf.debug {
		tracing.Select("fexpr").SetTraceLevel(tracing.LevelDebug)
	}
	if conf.builtins {
		listBuiltins(cmd.OutOrStdout())
		return nil
	}
	c, err := newCalc(conf)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case conf.eval != "":
		if c.eval(out, conf.eval) != nil {
			return errFailed
		}
		return nil
	case len(args) > 0:
		var failed error
		for _, arg := range args {
			if c.eval(out, arg) != nil {
				failed = errFailed
			}
		}
		return failed
	case isTerminal(os.Stdin):
		return c.repl(out)
	default:
		return c.lines(out, cmd.InOrStdin())
	}
}

func listBuiltins(w io.Writer) {
	for _, b := range fexpr.Builtins() {
		args := make([]string, b.Fn.Arity())
		for i := range args {
			args[i] = string(rune('a' + i))
		}
		fmt.Fprintf(w, "%s(%s)\n", b.Name, strings.Join(args, ", "))
	}
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}
