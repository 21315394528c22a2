// Package flagx contains helpers for layering several independent flag sets
// over a single os.Args. Each config loader filters the arguments down to the
// flags it owns before parsing, so unknown flags never abort parsing.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made up of the allowed flags and
// their values.
//
// Two argument forms are recognized:
//  1. flag and value as separate arguments: -c conf.json
//  2. flag and value joined with '=':       --config=conf.json
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" form: keep the whole token when the name is allowed.
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value" form: keep the flag, and the next token when it does
		// not look like another flag.
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path given via -c or -config.
// Other arguments are ignored; if neither flag is present, the result is "".
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
