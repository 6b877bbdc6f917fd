package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"
)

// envPrefix prefixes environment variables that set defaults for flags.
const envPrefix = "FEXPR_"

// config is the merged configuration of a run.
type config struct {
	eval     string
	given    []string
	vars     string
	verb     string
	echo     bool
	powright bool
	natlog   bool
	builtins bool
	debug    bool
}

// loadConfig merges the environment and the command line. Flags given
// explicitly override the environment, which overrides flag defaults.
func loadConfig(flags *pflag.FlagSet) (*config, error) {
	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("loading flags: %w", err)
	}
	c := config{
		eval:     k.String("eval"),
		given:    k.Strings("given"),
		vars:     k.String("vars"),
		verb:     k.String("fmt"),
		echo:     k.Bool("echo"),
		powright: k.Bool("pow-from-right"),
		natlog:   k.Bool("natural-log"),
		builtins: k.Bool("builtins"),
		debug:    k.Bool("debug"),
	}
	if c.verb == "" {
		c.verb = "%g"
	}
	return &c, nil
}

// envKey maps FEXPR_POW_FROM_RIGHT to pow-from-right. Definitions in
// FEXPR_GIVEN are separated by commas.
func envKey(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "given" {
		return key, strings.Split(value, ",")
	}
	return key, value
}
