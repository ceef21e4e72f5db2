// Package flagx helps several packages share one command line: each picks out
// only the flags it owns before handing them to its own flag.FlagSet.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the arguments of args that belong to allowedFlags,
// keeping values given either as "-f value" or "-f=value". Parsing stops at
// a bare "--".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

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

// Lookup returns the value of the last occurrence of any of names in args,
// or "" when none is present. names are given without the leading dash.
func Lookup(args []string, names ...string) string {
	allowed := make([]string, len(names))
	for i, n := range names {
		allowed[i] = "-" + n
	}

	var value string
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, "", "")
	}
	_ = fs.Parse(FilterArgs(args, allowed))
	return value
}

// ConfigPath returns the JSON config file named by -c or -config.
func ConfigPath(args []string) string {
	return Lookup(args, "c", "config")
}

// EnvFilePath returns the dotenv file named by -e or -env.
func EnvFilePath(args []string) string {
	return Lookup(args, "e", "env")
}
